package wire

import (
	"store-ratings/internal/adaptor"
	"store-ratings/internal/data/entity"
	"store-ratings/pkg/middleware"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStore(
	r chi.Router,
	storeHandler *adaptor.StoreHandler,
	ratingHandler *adaptor.RatingHandler,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== BROWSE ROUTES (admin + normal user) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleSystemAdmin, entity.RoleNormalUser))

		// GET /api/stores - Store listing with averages and the caller's own rating
		r.Get("/api/stores", storeHandler.GetAllStores)

		// GET /api/stores/{id} - Store detail
		r.Get("/api/stores/{id}", storeHandler.GetStore)
	})

	// ==================== OWNER ROUTES (admin + store owner) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleSystemAdmin, entity.RoleStoreOwner))

		// GET /api/stores/owner/{ownerId} - Stores belonging to an owner
		r.Get("/api/stores/owner/{ownerId}", storeHandler.GetStoresByOwner)

		// GET /api/stores/{id}/ratings - Ratings submitted for a store
		r.Get("/api/stores/{id}/ratings", ratingHandler.GetStoreRatings)
	})

	// ==================== STORE OWNER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleStoreOwner))

		// GET /api/stores/mine - The caller's own stores
		r.Get("/api/stores/mine", storeHandler.GetMyStores)
	})

	// ==================== RATING SUBMISSION (normal user) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleNormalUser))

		// POST /api/stores/{id}/ratings - Submit or replace own rating
		r.Post("/api/stores/{id}/ratings", ratingHandler.SubmitRating)
	})

	// ==================== AVERAGE (all roles) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log,
			entity.RoleSystemAdmin, entity.RoleStoreOwner, entity.RoleNormalUser))

		// GET /api/stores/{id}/average-rating - On-demand aggregate
		r.Get("/api/stores/{id}/average-rating", ratingHandler.GetStoreRatingStats)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, log))
		r.Use(middleware.RequireRoles(log, entity.RoleSystemAdmin))

		// POST /api/stores - Create store for a store owner
		r.Post("/api/stores", storeHandler.CreateStore)

		// PUT /api/stores/{id} - Update store
		r.Put("/api/stores/{id}", storeHandler.UpdateStore)

		// DELETE /api/stores/{id} - Remove store and its ratings
		r.Delete("/api/stores/{id}", storeHandler.DeleteStore)
	})
}
