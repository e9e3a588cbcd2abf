package adaptor

import (
	"encoding/json"
	"net/http"

	"store-ratings/internal/dto/request"
	"store-ratings/internal/usecase"
	"store-ratings/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StoreHandler struct {
	service usecase.StoreService
	log     *zap.Logger
}

func NewStoreHandler(service usecase.StoreService, log *zap.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		log:     log.With(zap.String("handler", "store")),
	}
}

// CreateStore handles POST /api/stores (admin only)
func (h *StoreHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	store, err := h.service.CreateStore(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create store")
		return
	}

	utils.ResponseCreated(w, "Store created successfully", store)
}

// GetAllStores handles GET /api/stores. The caller identity is used to attach
// their own rating to each store when present.
func (h *StoreHandler) GetAllStores(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())

	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	stores, err := h.service.GetAllStores(r.Context(), callerID, &req)
	if err != nil {
		respondError(w, h.log, err, "list stores")
		return
	}

	utils.ResponseSuccess(w, "success", stores)
}

// GetStore handles GET /api/stores/{id}
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	storeID := chi.URLParam(r, "id")

	store, err := h.service.GetStore(r.Context(), callerID, storeID)
	if err != nil {
		respondError(w, h.log, err, "get store")
		return
	}

	utils.ResponseSuccess(w, "success", store)
}

// GetStoresByOwner handles GET /api/stores/owner/{ownerId} (admin, store owner)
func (h *StoreHandler) GetStoresByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")

	stores, err := h.service.GetStoresByOwner(r.Context(), ownerID)
	if err != nil {
		respondError(w, h.log, err, "list owner stores")
		return
	}

	utils.ResponseSuccess(w, "success", stores)
}

// GetMyStores handles GET /api/stores/mine (store owner): the owner-scoped
// listing without spelling the owner id in the path.
func (h *StoreHandler) GetMyStores(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok || callerID == uuid.Nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	stores, err := h.service.GetStoresByOwner(r.Context(), callerID.String())
	if err != nil {
		respondError(w, h.log, err, "list own stores")
		return
	}

	utils.ResponseSuccess(w, "success", stores)
}

// UpdateStore handles PUT /api/stores/{id} (admin only)
func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")

	var req request.UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	store, err := h.service.UpdateStore(r.Context(), storeID, &req)
	if err != nil {
		respondError(w, h.log, err, "update store")
		return
	}

	utils.ResponseSuccess(w, "Store updated successfully", store)
}

// DeleteStore handles DELETE /api/stores/{id} (admin only). Ratings for the
// store are removed in the same transaction.
func (h *StoreHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "id")

	if err := h.service.DeleteStore(r.Context(), storeID); err != nil {
		respondError(w, h.log, err, "delete store")
		return
	}

	utils.ResponseSuccess(w, "Store deleted successfully", nil)
}
