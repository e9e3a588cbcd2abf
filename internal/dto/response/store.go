package response

import (
	"time"

	"store-ratings/internal/data/entity"
)

type StoreResponse struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Address       string       `json:"address"`
	Owner         *UserSummary `json:"owner,omitempty"`
	AverageRating float64      `json:"average_rating"`
	RatingCount   int64        `json:"rating_count"`
	MyRating      *int         `json:"my_rating,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// StoreSummary is the short store projection embedded in ratings.
type StoreSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

func StoreToResponse(store *entity.Store, owner *UserSummary, avgRating float64, ratingCount int64) StoreResponse {
	return StoreResponse{
		ID:            store.ID.String(),
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		Owner:         owner,
		AverageRating: avgRating,
		RatingCount:   ratingCount,
		CreatedAt:     store.CreatedAt,
	}
}

func StoreToSummary(store *entity.Store) *StoreSummary {
	if store == nil {
		return nil
	}
	return &StoreSummary{
		ID:      store.ID.String(),
		Name:    store.Name,
		Address: store.Address,
	}
}
