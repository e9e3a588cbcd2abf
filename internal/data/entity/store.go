package entity

import (
	"github.com/google/uuid"
)

type Store struct {
	Base
	Name    string    `db:"name"`
	Email   string    `db:"email"`
	Address string    `db:"address"`
	OwnerID uuid.UUID `db:"owner_id"`
}
