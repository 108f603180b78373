package models

import (
	"time"

	"github.com/google/uuid"
)

// Estado is a Mexican state. Immutable reference data seeded administratively.
type Estado struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Nombre    string    `json:"nombre" db:"nombre"`
	Codigo    string    `json:"codigo" db:"codigo"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
