package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/auth/register - Self sign-up (always a normal user)
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Obtain a token
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))

		// GET /api/auth/me - Current user's profile
		r.Get("/api/auth/me", authHandler.Me)

		// POST /api/auth/logout - Discard the client side token
		r.Post("/api/auth/logout", authHandler.Logout)
	})
}
