package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/internal/data/entity"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (any authenticated user) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))

		// PUT /api/users/password - Change own password
		r.Put("/api/users/password", userHandler.UpdatePassword)

		// PUT /api/users/profile - Update own name/address
		r.Put("/api/users/profile", userHandler.UpdateProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleSystemAdmin))

		// POST /api/users - Create user with any role
		r.Post("/api/users", userHandler.CreateUser)

		// GET /api/users - List users
		r.Get("/api/users", userHandler.GetAllUsers)

		// GET /api/users/{id} - User detail
		r.Get("/api/users/{id}", userHandler.GetUser)

		// PUT /api/users/{id} - Update any user
		r.Put("/api/users/{id}", userHandler.UpdateUser)

		// DELETE /api/users/{id} - Remove user and their ratings
		r.Delete("/api/users/{id}", userHandler.DeleteUser)
	})
}
