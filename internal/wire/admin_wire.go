package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/internal/data/entity"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleSystemAdmin))

		// GET /api/admin/stats - Platform counters for the dashboard
		r.Get("/api/admin/stats", adminHandler.GetStats)
	})
}
