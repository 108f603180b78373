package models

import (
	"time"

	"github.com/google/uuid"
)

// User holds a registered account. MunicipioID must belong to EstadoID and,
// when ColoniaID is set, the colonia's estado/municipio must match. Accounts
// are soft-deleted via Activo, never removed.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never serialize in JSON
	Nombre       *string    `json:"nombre" db:"nombre"`
	Telefono     *string    `json:"telefono" db:"telefono"`
	CodigoPostal string     `json:"codigo_postal" db:"codigo_postal"`
	ColoniaID    *uuid.UUID `json:"colonia_id" db:"colonia_id"`
	EstadoID     uuid.UUID  `json:"estado_id" db:"estado_id"`
	MunicipioID  uuid.UUID  `json:"municipio_id" db:"municipio_id"`
	Activo       bool       `json:"activo" db:"activo"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
