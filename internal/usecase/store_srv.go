package usecase

import (
	"context"
	"time"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/data/repository"
	"store-ratings/internal/dto/request"
	"store-ratings/internal/dto/response"
	"store-ratings/pkg/apperr"
	"store-ratings/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StoreService interface {
	CreateStore(ctx context.Context, req *request.CreateStoreRequest) (*response.StoreResponse, error)
	GetAllStores(ctx context.Context, callerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.StoreResponse], error)
	GetStore(ctx context.Context, callerID uuid.UUID, storeID string) (*response.StoreResponse, error)
	GetStoresByOwner(ctx context.Context, ownerID string) ([]response.StoreResponse, error)
	UpdateStore(ctx context.Context, storeID string, req *request.UpdateStoreRequest) (*response.StoreResponse, error)
	DeleteStore(ctx context.Context, storeID string) error
}

type storeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStoreService(repo *repository.Repository, log *zap.Logger) StoreService {
	return &storeService{
		repo: repo,
		log:  log.With(zap.String("service", "store")),
	}
}

func (s *storeService) CreateStore(ctx context.Context, req *request.CreateStoreRequest) (*response.StoreResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create store validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, apperr.Validation("invalid owner ID format %s", req.OwnerID)
	}

	owner, err := s.requireStoreOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	store := &entity.Store{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: ownerID,
	}

	if err := s.repo.Store.Create(ctx, store); err != nil {
		s.log.Error("Failed to create store", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	s.log.Info("Store created",
		zap.String("store_id", store.ID.String()),
		zap.String("owner_id", ownerID.String()))

	resp := response.StoreToResponse(store, response.UserToSummary(owner), 0, 0)
	return &resp, nil
}

func (s *storeService) GetAllStores(ctx context.Context, callerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.StoreResponse], error) {
	stores, err := s.repo.Store.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get all stores", zap.Error(err))
		return nil, err
	}

	total, err := s.repo.Store.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count stores", zap.Error(err))
		return nil, err
	}

	storeResponses := make([]response.StoreResponse, len(stores))
	for i, store := range stores {
		resp, err := s.buildStoreResponse(ctx, store, callerID)
		if err != nil {
			return nil, err
		}
		storeResponses[i] = *resp
	}

	return response.NewPaginatedResponse(storeResponses, req.Page, req.PerPage, total), nil
}

func (s *storeService) GetStore(ctx context.Context, callerID uuid.UUID, storeID string) (*response.StoreResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, apperr.Validation("invalid store ID format %s", storeID)
	}

	store, err := s.repo.Store.FindByID(ctx, storeUUID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFound("store %s not found", storeID)
	}

	return s.buildStoreResponse(ctx, store, callerID)
}

func (s *storeService) GetStoresByOwner(ctx context.Context, ownerID string) ([]response.StoreResponse, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, apperr.Validation("invalid owner ID format %s", ownerID)
	}

	owner, err := s.repo.User.FindByID(ctx, ownerUUID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperr.NotFound("user %s not found", ownerID)
	}

	stores, err := s.repo.Store.FindByOwnerID(ctx, ownerUUID)
	if err != nil {
		s.log.Error("Failed to get stores by owner", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, err
	}

	ownerSummary := response.UserToSummary(owner)
	storeResponses := make([]response.StoreResponse, len(stores))
	for i, store := range stores {
		avgRating, ratingCount, err := s.repo.Rating.GetStoreRatingStats(ctx, store.ID)
		if err != nil {
			return nil, err
		}
		storeResponses[i] = response.StoreToResponse(store, ownerSummary, avgRating, ratingCount)
	}

	return storeResponses, nil
}

func (s *storeService) UpdateStore(ctx context.Context, storeID string, req *request.UpdateStoreRequest) (*response.StoreResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update store validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, apperr.Validation("invalid store ID format %s", storeID)
	}

	store, err := s.repo.Store.FindByID(ctx, storeUUID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFound("store %s not found", storeID)
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Email != nil {
		store.Email = *req.Email
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.OwnerID != nil {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return nil, apperr.Validation("invalid owner ID format %s", *req.OwnerID)
		}
		if _, err := s.requireStoreOwner(ctx, ownerID); err != nil {
			return nil, err
		}
		store.OwnerID = ownerID
	}

	store.UpdatedAt = time.Now()

	if err := s.repo.Store.Update(ctx, store); err != nil {
		s.log.Error("Failed to update store", zap.Error(err), zap.String("store_id", storeID))
		return nil, err
	}

	s.log.Info("Store updated", zap.String("store_id", storeID))

	return s.buildStoreResponse(ctx, store, uuid.Nil)
}

func (s *storeService) DeleteStore(ctx context.Context, storeID string) error {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return apperr.Validation("invalid store ID format %s", storeID)
	}

	store, err := s.repo.Store.FindByID(ctx, storeUUID)
	if err != nil {
		return err
	}
	if store == nil {
		return apperr.NotFound("store %s not found", storeID)
	}

	// Ratings are removed in the same transaction
	if err := s.repo.Store.DeleteWithRatings(ctx, storeUUID); err != nil {
		s.log.Error("Failed to delete store", zap.Error(err), zap.String("store_id", storeID))
		return err
	}

	s.log.Info("Store deleted", zap.String("store_id", storeID))
	return nil
}

// ==================== HELPER METHODS ====================

// requireStoreOwner loads the user and verifies the STORE_OWNER role.
func (s *storeService) requireStoreOwner(ctx context.Context, ownerID uuid.UUID) (*entity.User, error) {
	owner, err := s.repo.User.FindByID(ctx, ownerID)
	if err != nil {
		s.log.Error("Failed to load store owner", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, err
	}
	if owner == nil || owner.Role != entity.RoleStoreOwner {
		return nil, apperr.Validation("invalid store owner")
	}
	return owner, nil
}

// buildStoreResponse joins owner summary, rating stats and, when callerID is
// set, the caller's own rating value.
func (s *storeService) buildStoreResponse(ctx context.Context, store *entity.Store, callerID uuid.UUID) (*response.StoreResponse, error) {
	avgRating, ratingCount, err := s.repo.Rating.GetStoreRatingStats(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	owner, _ := s.repo.User.FindByID(ctx, store.OwnerID)

	resp := response.StoreToResponse(store, response.UserToSummary(owner), avgRating, ratingCount)

	if callerID != uuid.Nil {
		myRating, err := s.repo.Rating.FindByUserAndStore(ctx, callerID, store.ID)
		if err != nil {
			return nil, err
		}
		if myRating != nil {
			resp.MyRating = &myRating.Value
		}
	}

	return &resp, nil
}
