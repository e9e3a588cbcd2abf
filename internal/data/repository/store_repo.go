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

type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Store, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error)
	CountAll(ctx context.Context) (int64, error)
	CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, store *entity.Store) error
	DeleteWithRatings(ctx context.Context, id uuid.UUID) error
}

type storeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStoreRepository(db database.PgxIface, log *zap.Logger) StoreRepository {
	return &storeRepository{
		db:  db,
		log: log.With(zap.String("repository", "store")),
	}
}

func (sr *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, email, address, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := sr.db.Exec(ctx, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
		store.CreatedAt,
		store.UpdatedAt,
	)

	if err != nil {
		sr.log.Error("Failed to create store",
			zap.Error(err),
			zap.String("name", store.Name),
			zap.String("owner_id", store.OwnerID.String()),
		)
		return fmt.Errorf("create store %s: %w", store.Name, err)
	}

	return nil
}

func (sr *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	query := `
		SELECT id, name, email, address, owner_id, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var store entity.Store
	err := sr.db.QueryRow(ctx, query, id).Scan(
		&store.ID,
		&store.Name,
		&store.Email,
		&store.Address,
		&store.OwnerID,
		&store.CreatedAt,
		&store.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		sr.log.Error("Failed to find store by ID",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return nil, fmt.Errorf("find store by ID %s: %w", id.String(), err)
	}

	return &store, nil
}

func (sr *storeRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Store, error) {
	query := `
		SELECT id, name, email, address, owner_id, created_at, updated_at
		FROM stores
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := sr.db.Query(ctx, query, limit, offset)
	if err != nil {
		sr.log.Error("Failed to get all stores",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all stores limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return scanStores(rows, sr.log)
}

func (sr *storeRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error) {
	query := `
		SELECT id, name, email, address, owner_id, created_at, updated_at
		FROM stores
		WHERE owner_id = $1
		ORDER BY name ASC
	`

	rows, err := sr.db.Query(ctx, query, ownerID)
	if err != nil {
		sr.log.Error("Failed to find stores by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find stores by owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return scanStores(rows, sr.log)
}

func scanStores(rows pgx.Rows, log *zap.Logger) ([]*entity.Store, error) {
	var stores []*entity.Store
	for rows.Next() {
		var store entity.Store
		err := rows.Scan(
			&store.ID,
			&store.Name,
			&store.Email,
			&store.Address,
			&store.OwnerID,
			&store.CreatedAt,
			&store.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan store row", zap.Error(err))
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, &store)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate stores rows: %w", err)
	}

	return stores, nil
}

func (sr *storeRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM stores`

	var count int64
	err := sr.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		sr.log.Error("Database error counting stores", zap.Error(err))
		return 0, fmt.Errorf("count all stores: %w", err)
	}

	return count, nil
}

func (sr *storeRepository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM stores WHERE owner_id = $1`

	var count int64
	err := sr.db.QueryRow(ctx, query, ownerID).Scan(&count)
	if err != nil {
		sr.log.Error("Failed to count stores by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return 0, fmt.Errorf("count stores by owner %s: %w", ownerID.String(), err)
	}

	return count, nil
}

func (sr *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	query := `
		UPDATE stores
		SET name = $2, email = $3, address = $4, owner_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := sr.db.Exec(ctx, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
		store.UpdatedAt,
	)

	if err != nil {
		sr.log.Error("Failed to update store",
			zap.Error(err),
			zap.String("store_id", store.ID.String()),
		)
		return fmt.Errorf("update store %s: %w", store.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("store %s not found", store.ID.String())
	}

	return nil
}

// DeleteWithRatings removes the store and its dependent ratings in a single
// transaction. Ratings go first so no orphaned rows remain.
func (sr *storeRepository) DeleteWithRatings(ctx context.Context, id uuid.UUID) error {
	tx, err := sr.db.Begin(ctx)
	if err != nil {
		sr.log.Error("Failed to begin delete store transaction",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return fmt.Errorf("begin delete store %s: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ratings WHERE store_id = $1`, id); err != nil {
		sr.log.Error("Failed to delete store ratings",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return fmt.Errorf("delete ratings for store %s: %w", id.String(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		sr.log.Error("Failed to delete store",
			zap.Error(err),
			zap.String("store_id", id.String()),
		)
		return fmt.Errorf("delete store %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("store %s not found", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete store %s: %w", id.String(), err)
	}

	sr.log.Info("Store deleted", zap.String("store_id", id.String()))
	return nil
}
