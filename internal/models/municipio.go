package models

import (
	"time"

	"github.com/google/uuid"
)

// Municipio belongs to exactly one Estado. (Nombre, EstadoID) is unique.
type Municipio struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Nombre    string    `json:"nombre" db:"nombre"`
	EstadoID  uuid.UUID `json:"estado_id" db:"estado_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
