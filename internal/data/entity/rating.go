package entity

import (
	"github.com/google/uuid"
)

// Rating is a user's 1-5 star rating for a store. At most one row exists per
// (user_id, store_id) pair, enforced by a unique constraint in the database.
type Rating struct {
	Base
	UserID  uuid.UUID `db:"user_id"`
	StoreID uuid.UUID `db:"store_id"`
	Value   int       `db:"value"` // 1-5
	Comment *string   `db:"comment"`
}
