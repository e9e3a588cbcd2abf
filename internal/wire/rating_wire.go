package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/internal/data/entity"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== NORMAL USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleNormalUser))

		// PUT /api/ratings/{id} - Update own rating
		r.Put("/api/ratings/{id}", ratingHandler.UpdateRating)
	})

	// ==================== OWNER-OR-ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleNormalUser, entity.RoleSystemAdmin))

		// DELETE /api/ratings/{id} - Remove a rating (owner, or any as admin)
		r.Delete("/api/ratings/{id}", ratingHandler.DeleteRating)
	})

	// ==================== SHARED ROUTES (all roles) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log,
			entity.RoleSystemAdmin, entity.RoleStoreOwner, entity.RoleNormalUser))

		// GET /api/ratings/user/{userId} - Ratings submitted by a user
		r.Get("/api/ratings/user/{userId}", ratingHandler.GetUserRatings)
	})

	// ==================== DASHBOARD ROUTES (admin + store owner) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleSystemAdmin, entity.RoleStoreOwner))

		// GET /api/ratings/recent - Latest submissions
		r.Get("/api/ratings/recent", ratingHandler.GetRecentRatings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleSystemAdmin))

		// GET /api/ratings/all - Every rating, paginated
		r.Get("/api/ratings/all", ratingHandler.GetAllRatings)
	})
}
