package repository

import (
	"context"
	"fmt"

	"store-ratings/internal/data/entity"
	"store-ratings/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RatingRepository interface {
	Upsert(ctx context.Context, rating *entity.Rating) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)
	FindByStoreID(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*entity.Rating, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Rating, error)
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Rating, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Rating, error)
	CountByStoreID(ctx context.Context, storeID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, rating *entity.Rating) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	GetStoreRatingStats(ctx context.Context, storeID uuid.UUID) (float64, int64, error) // average, count
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

// Upsert creates the rating or, when the (user_id, store_id) pair already
// exists, replaces its value and comment. The row keeps its identity and
// created_at; updated_at bumps. The RETURNING clause writes the persisted
// row back into the entity so callers see the stable id after a replace.
func (rr *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, user_id, store_id, value, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, store_id) DO UPDATE SET
			value = EXCLUDED.value,
			comment = EXCLUDED.comment,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	err := rr.db.QueryRow(ctx, query,
		rating.ID,
		rating.UserID,
		rating.StoreID,
		rating.Value,
		rating.Comment,
		rating.CreatedAt,
		rating.UpdatedAt,
	).Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)

	if err != nil {
		rr.log.Error("Failed to upsert rating",
			zap.Error(err),
			zap.String("user_id", rating.UserID.String()),
			zap.String("store_id", rating.StoreID.String()),
		)
		return fmt.Errorf("upsert rating for store %s by user %s: %w",
			rating.StoreID.String(), rating.UserID.String(), err)
	}

	return nil
}

func (rr *ratingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, value, comment, created_at, updated_at
		FROM ratings
		WHERE id = $1
	`

	var rating entity.Rating
	err := rr.db.QueryRow(ctx, query, id).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.Value,
		&rating.Comment,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		rr.log.Error("Failed to find rating by ID",
			zap.Error(err),
			zap.String("rating_id", id.String()),
		)
		return nil, fmt.Errorf("find rating by ID %s: %w", id.String(), err)
	}

	return &rating, nil
}

func (rr *ratingRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, value, comment, created_at, updated_at
		FROM ratings
		WHERE store_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := rr.db.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		rr.log.Error("Failed to find ratings by store ID",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find ratings by store ID %s: %w", storeID.String(), err)
	}
	defer rows.Close()

	return scanRatings(rows, rr.log)
}

func (rr *ratingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, value, comment, created_at, updated_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := rr.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		rr.log.Error("Failed to find ratings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find ratings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanRatings(rows, rr.log)
}

func (rr *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, value, comment, created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND store_id = $2
		LIMIT 1
	`

	var rating entity.Rating
	err := rr.db.QueryRow(ctx, query, userID, storeID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.StoreID,
		&rating.Value,
		&rating.Comment,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		rr.log.Error("Failed to find rating by user and store",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("store_id", storeID.String()),
		)
		return nil, fmt.Errorf("find rating by user %s and store %s: %w",
			userID.String(), storeID.String(), err)
	}

	return &rating, nil
}

func (rr *ratingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, value, comment, created_at, updated_at
		FROM ratings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := rr.db.Query(ctx, query, limit, offset)
	if err != nil {
		rr.log.Error("Failed to get all ratings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all ratings limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return scanRatings(rows, rr.log)
}

func (rr *ratingRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Rating, error) {
	query := `
		SELECT id, user_id, store_id, value, comment, created_at, updated_at
		FROM ratings
		ORDER BY updated_at DESC
		LIMIT $1
	`

	rows, err := rr.db.Query(ctx, query, limit)
	if err != nil {
		rr.log.Error("Failed to get recent ratings",
			zap.Error(err),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find recent ratings limit %d: %w", limit, err)
	}
	defer rows.Close()

	return scanRatings(rows, rr.log)
}

func scanRatings(rows pgx.Rows, log *zap.Logger) ([]*entity.Rating, error) {
	var ratings []*entity.Rating
	for rows.Next() {
		var rating entity.Rating
		err := rows.Scan(
			&rating.ID,
			&rating.UserID,
			&rating.StoreID,
			&rating.Value,
			&rating.Comment,
			&rating.CreatedAt,
			&rating.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate ratings rows: %w", err)
	}

	return ratings, nil
}

func (rr *ratingRepository) CountByStoreID(ctx context.Context, storeID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings WHERE store_id = $1`

	var count int64
	err := rr.db.QueryRow(ctx, query, storeID).Scan(&count)
	if err != nil {
		rr.log.Error("Failed to count ratings by store ID",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return 0, fmt.Errorf("count ratings by store ID %s: %w", storeID.String(), err)
	}

	return count, nil
}

func (rr *ratingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings`

	var count int64
	err := rr.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		rr.log.Error("Database error counting ratings", zap.Error(err))
		return 0, fmt.Errorf("count all ratings: %w", err)
	}

	return count, nil
}

func (rr *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	query := `
		UPDATE ratings
		SET value = $2, comment = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := rr.db.Exec(ctx, query,
		rating.ID,
		rating.Value,
		rating.Comment,
		rating.UpdatedAt,
	)

	if err != nil {
		rr.log.Error("Failed to update rating",
			zap.Error(err),
			zap.String("rating_id", rating.ID.String()),
		)
		return fmt.Errorf("update rating %s: %w", rating.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rating %s not found", rating.ID.String())
	}

	return nil
}

func (rr *ratingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM ratings WHERE id = $1`

	result, err := rr.db.Exec(ctx, query, id)
	if err != nil {
		rr.log.Error("Failed to delete rating",
			zap.Error(err),
			zap.String("rating_id", id.String()),
		)
		return fmt.Errorf("delete rating %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rating %s not found", id.String())
	}

	rr.log.Info("Rating deleted", zap.String("rating_id", id.String()))
	return nil
}

// GetStoreRatingStats computes count and arithmetic mean of the store's
// rating values on demand. An empty set yields average 0 with count 0.
func (rr *ratingRepository) GetStoreRatingStats(ctx context.Context, storeID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT
			COALESCE(AVG(value), 0) as avg_rating,
			COUNT(*) as rating_count
		FROM ratings
		WHERE store_id = $1
	`

	var avgRating float64
	var ratingCount int64
	err := rr.db.QueryRow(ctx, query, storeID).Scan(&avgRating, &ratingCount)
	if err != nil {
		rr.log.Error("Failed to get store rating stats",
			zap.Error(err),
			zap.String("store_id", storeID.String()),
		)
		return 0, 0, fmt.Errorf("get store rating stats for %s: %w", storeID.String(), err)
	}

	return avgRating, ratingCount, nil
}
