package adaptor

import (
	"encoding/json"
	"net/http"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/dto/request"
	"store-ratings/internal/usecase"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// SubmitRating handles POST /api/stores/{id}/ratings (normal user).
// Submitting again for the same store replaces the previous rating.
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	storeID := chi.URLParam(r, "id")

	var req request.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rating, err := h.service.SubmitRating(r.Context(), userID, storeID, &req)
	if err != nil {
		respondError(w, h.log, err, "submit rating")
		return
	}

	utils.ResponseCreated(w, "Rating submitted successfully", rating)
}

// GetStoreRatings handles GET /api/stores/{id}/ratings (admin, store owner)
func (h *RatingHandler) GetStoreRatings(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")

	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	ratings, err := h.service.GetStoreRatings(r.Context(), storeID, &req)
	if err != nil {
		respondError(w, h.log, err, "list store ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetStoreRatingStats handles GET /api/stores/{id}/average-rating
func (h *RatingHandler) GetStoreRatingStats(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")

	stats, err := h.service.GetStoreRatingStats(r.Context(), storeID)
	if err != nil {
		respondError(w, h.log, err, "get rating stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// UpdateRating handles PUT /api/ratings/{id} (normal user, own rating only)
func (h *RatingHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	ratingID := chi.URLParam(r, "id")

	var req request.UpdateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rating, err := h.service.UpdateRating(r.Context(), ratingID, userID, &req)
	if err != nil {
		respondError(w, h.log, err, "update rating")
		return
	}

	utils.ResponseSuccess(w, "Rating updated successfully", rating)
}

// DeleteRating handles DELETE /api/ratings/{id} (owner of the rating or admin)
func (h *RatingHandler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	ratingID := chi.URLParam(r, "id")

	if err := h.service.DeleteRating(r.Context(), ratingID, userID, entity.UserRole(role)); err != nil {
		respondError(w, h.log, err, "delete rating")
		return
	}

	utils.ResponseSuccess(w, "Rating deleted successfully", nil)
}

// GetUserRatings handles GET /api/ratings/user/{userId}
func (h *RatingHandler) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	ratings, err := h.service.GetUserRatings(r.Context(), userID, &req)
	if err != nil {
		respondError(w, h.log, err, "list user ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetAllRatings handles GET /api/ratings/all (admin only)
func (h *RatingHandler) GetAllRatings(w http.ResponseWriter, r *http.Request) {
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	ratings, err := h.service.GetAllRatings(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "list ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetRecentRatings handles GET /api/ratings/recent (admin, store owner)
func (h *RatingHandler) GetRecentRatings(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 10)

	ratings, err := h.service.GetRecentRatings(r.Context(), limit)
	if err != nil {
		respondError(w, h.log, err, "list recent ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}
