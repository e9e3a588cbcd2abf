package response

import (
	"time"

	"store-ratings/internal/data/entity"
)

type RatingResponse struct {
	ID        string        `json:"id"`
	User      *UserSummary  `json:"user,omitempty"`
	Store     *StoreSummary `json:"store,omitempty"`
	Value     int           `json:"value"`
	Comment   *string       `json:"comment,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type StoreRatingStats struct {
	StoreID       string  `json:"store_id"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// Helper converter
func RatingToResponse(rating *entity.Rating, user *UserSummary, store *StoreSummary) RatingResponse {
	return RatingResponse{
		ID:        rating.ID.String(),
		User:      user,
		Store:     store,
		Value:     rating.Value,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}
