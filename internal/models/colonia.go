package models

import (
	"time"

	"github.com/google/uuid"
)

// Colonia is the finest-grained geography unit. EstadoID is denormalized from
// the municipio and must match it; many colonias share a codigo postal.
type Colonia struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Nombre       string    `json:"nombre" db:"nombre"`
	CodigoPostal string    `json:"codigo_postal" db:"codigo_postal"`
	MunicipioID  uuid.UUID `json:"municipio_id" db:"municipio_id"`
	EstadoID     uuid.UUID `json:"estado_id" db:"estado_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
