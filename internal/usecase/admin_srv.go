package usecase

import (
	"context"

	"store-ratings/internal/data/repository"
	"store-ratings/internal/dto/response"

	"go.uber.org/zap"
)

type AdminService interface {
	GetStats(ctx context.Context) (*response.PlatformStats, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

// GetStats returns platform-wide counts for the administrator dashboard.
func (s *adminService) GetStats(ctx context.Context) (*response.PlatformStats, error) {
	usersCount, err := s.repo.User.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, err
	}

	storesCount, err := s.repo.Store.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count stores", zap.Error(err))
		return nil, err
	}

	ratingsCount, err := s.repo.Rating.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count ratings", zap.Error(err))
		return nil, err
	}

	return &response.PlatformStats{
		UsersCount:   usersCount,
		StoresCount:  storesCount,
		RatingsCount: ratingsCount,
	}, nil
}
