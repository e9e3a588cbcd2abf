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

type RatingService interface {
	// Submit creates or replaces the caller's rating for a store (one per
	// user per store).
	SubmitRating(ctx context.Context, userID uuid.UUID, storeID string, req *request.SubmitRatingRequest) (*response.RatingResponse, error)
	GetStoreRatings(ctx context.Context, storeID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error)
	GetStoreRatingStats(ctx context.Context, storeID string) (*response.StoreRatingStats, error)
	UpdateRating(ctx context.Context, ratingID string, requesterID uuid.UUID, req *request.UpdateRatingRequest) (*response.RatingResponse, error)
	DeleteRating(ctx context.Context, ratingID string, requesterID uuid.UUID, requesterRole entity.UserRole) error
	GetUserRatings(ctx context.Context, userID string, req *request.PaginatedRequest) ([]response.RatingResponse, error)
	GetAllRatings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error)
	GetRecentRatings(ctx context.Context, limit int) ([]response.RatingResponse, error)
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) SubmitRating(ctx context.Context, userID uuid.UUID, storeID string, req *request.SubmitRatingRequest) (*response.RatingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit rating validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.Value < 1 || req.Value > 5 {
		return nil, apperr.Validation("rating value must be between 1 and 5")
	}

	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, apperr.Validation("invalid store ID format %s", storeID)
	}

	// Store and user absence are distinct failures from a bad value
	store, err := s.repo.Store.FindByID(ctx, storeUUID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFound("store %s not found", storeID)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %s not found", userID.String())
	}

	// Upsert: an existing (user, store) row keeps its identity and
	// created_at; the database resolves concurrent submissions.
	now := time.Now()
	rating := &entity.Rating{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:  userID,
		StoreID: storeUUID,
		Value:   req.Value,
		Comment: req.Comment,
	}

	if err := s.repo.Rating.Upsert(ctx, rating); err != nil {
		s.log.Error("Failed to submit rating",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("store_id", storeID),
		)
		return nil, err
	}

	s.log.Info("Rating submitted",
		zap.String("rating_id", rating.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("store_id", storeID),
		zap.Int("value", req.Value),
	)

	resp := response.RatingToResponse(rating, response.UserToSummary(user), response.StoreToSummary(store))
	return &resp, nil
}

func (s *ratingService) GetStoreRatings(ctx context.Context, storeID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error) {
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

	ratings, err := s.repo.Rating.FindByStoreID(ctx, storeUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get store ratings", zap.Error(err), zap.String("store_id", storeID))
		return nil, err
	}

	total, err := s.repo.Rating.CountByStoreID(ctx, storeUUID)
	if err != nil {
		s.log.Error("Failed to count store ratings", zap.Error(err))
		return nil, err
	}

	storeSummary := response.StoreToSummary(store)
	ratingResponses := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		user, _ := s.repo.User.FindByID(ctx, rating.UserID)
		ratingResponses[i] = response.RatingToResponse(rating, response.UserToSummary(user), storeSummary)
	}

	return response.NewPaginatedResponse(ratingResponses, req.Page, req.PerPage, total), nil
}

func (s *ratingService) GetStoreRatingStats(ctx context.Context, storeID string) (*response.StoreRatingStats, error) {
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

	avgRating, ratingCount, err := s.repo.Rating.GetStoreRatingStats(ctx, storeUUID)
	if err != nil {
		s.log.Error("Failed to get store rating stats", zap.Error(err), zap.String("store_id", storeID))
		return nil, err
	}

	return &response.StoreRatingStats{
		StoreID:       storeID,
		AverageRating: avgRating,
		TotalRatings:  ratingCount,
	}, nil
}

func (s *ratingService) UpdateRating(ctx context.Context, ratingID string, requesterID uuid.UUID, req *request.UpdateRatingRequest) (*response.RatingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update rating validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ratingUUID, err := uuid.Parse(ratingID)
	if err != nil {
		return nil, apperr.Validation("invalid rating ID format %s", ratingID)
	}

	rating, err := s.repo.Rating.FindByID(ctx, ratingUUID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, apperr.NotFound("rating %s not found", ratingID)
	}

	// Only the rating's owner may update it
	if rating.UserID != requesterID {
		return nil, apperr.Authorization("you can only update your own ratings")
	}

	updated := false

	if req.Value != nil && *req.Value != rating.Value {
		if *req.Value < 1 || *req.Value > 5 {
			return nil, apperr.Validation("rating value must be between 1 and 5")
		}
		rating.Value = *req.Value
		updated = true
	}

	if req.Comment != nil {
		rating.Comment = req.Comment
		updated = true
	}

	if !updated {
		// No changes
		return s.buildRatingResponse(ctx, rating), nil
	}

	rating.UpdatedAt = time.Now()

	if err := s.repo.Rating.Update(ctx, rating); err != nil {
		s.log.Error("Failed to update rating", zap.Error(err), zap.String("rating_id", ratingID))
		return nil, err
	}

	s.log.Info("Rating updated",
		zap.String("rating_id", ratingID),
		zap.String("user_id", requesterID.String()),
	)

	return s.buildRatingResponse(ctx, rating), nil
}

func (s *ratingService) DeleteRating(ctx context.Context, ratingID string, requesterID uuid.UUID, requesterRole entity.UserRole) error {
	ratingUUID, err := uuid.Parse(ratingID)
	if err != nil {
		return apperr.Validation("invalid rating ID format %s", ratingID)
	}

	rating, err := s.repo.Rating.FindByID(ctx, ratingUUID)
	if err != nil {
		return err
	}
	if rating == nil {
		return apperr.NotFound("rating %s not found", ratingID)
	}

	// The owner may delete their own rating; an administrator may delete any
	if rating.UserID != requesterID && requesterRole != entity.RoleSystemAdmin {
		return apperr.Authorization("you can only delete your own ratings")
	}

	if err := s.repo.Rating.Delete(ctx, ratingUUID); err != nil {
		s.log.Error("Failed to delete rating", zap.Error(err), zap.String("rating_id", ratingID))
		return err
	}

	s.log.Info("Rating deleted",
		zap.String("rating_id", ratingID),
		zap.String("requester_id", requesterID.String()),
		zap.String("requester_role", string(requesterRole)),
	)

	return nil
}

func (s *ratingService) GetUserRatings(ctx context.Context, userID string, req *request.PaginatedRequest) ([]response.RatingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.Validation("invalid user ID format %s", userID)
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %s not found", userID)
	}

	ratings, err := s.repo.Rating.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user ratings", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	userSummary := response.UserToSummary(user)
	ratingResponses := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		store, _ := s.repo.Store.FindByID(ctx, rating.StoreID)
		ratingResponses[i] = response.RatingToResponse(rating, userSummary, response.StoreToSummary(store))
	}

	return ratingResponses, nil
}

func (s *ratingService) GetAllRatings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error) {
	ratings, err := s.repo.Rating.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get all ratings", zap.Error(err))
		return nil, err
	}

	total, err := s.repo.Rating.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count ratings", zap.Error(err))
		return nil, err
	}

	ratingResponses := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		resp := s.buildRatingResponse(ctx, rating)
		ratingResponses[i] = *resp
	}

	return response.NewPaginatedResponse(ratingResponses, req.Page, req.PerPage, total), nil
}

func (s *ratingService) GetRecentRatings(ctx context.Context, limit int) ([]response.RatingResponse, error) {
	if limit < 1 {
		limit = 10
	}

	ratings, err := s.repo.Rating.FindRecent(ctx, limit)
	if err != nil {
		s.log.Error("Failed to get recent ratings", zap.Error(err))
		return nil, err
	}

	ratingResponses := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		resp := s.buildRatingResponse(ctx, rating)
		ratingResponses[i] = *resp
	}

	return ratingResponses, nil
}

// ==================== HELPER METHODS ====================

func (s *ratingService) buildRatingResponse(ctx context.Context, rating *entity.Rating) *response.RatingResponse {
	user, _ := s.repo.User.FindByID(ctx, rating.UserID)
	store, _ := s.repo.Store.FindByID(ctx, rating.StoreID)

	resp := response.RatingToResponse(rating, response.UserToSummary(user), response.StoreToSummary(store))
	return &resp
}
