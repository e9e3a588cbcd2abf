package usecase

import (
	"store-ratings/internal/data/repository"
	"store-ratings/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Store  StoreService
	Rating RatingService
	Admin  AdminService
}

func NewService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, tokens, log),
		User:   NewUserService(repo, log),
		Store:  NewStoreService(repo, log),
		Rating: NewRatingService(repo, log),
		Admin:  NewAdminService(repo, log),
	}
}
