package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing is a classified ad. Imagenes holds 1..5 object-storage keys. Same
// geographic consistency invariant as User. Soft-deleted via Activo.
type Listing struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Titulo       string     `json:"titulo" db:"titulo"`
	Descripcion  string     `json:"descripcion" db:"descripcion"`
	Precio       float64    `json:"precio" db:"precio"`
	Imagenes     []string   `json:"imagenes" db:"imagenes"`
	UsuarioID    uuid.UUID  `json:"usuario_id" db:"usuario_id"`
	CodigoPostal string     `json:"codigo_postal" db:"codigo_postal"`
	ColoniaID    *uuid.UUID `json:"colonia_id" db:"colonia_id"`
	EstadoID     uuid.UUID  `json:"estado_id" db:"estado_id"`
	MunicipioID  uuid.UUID  `json:"municipio_id" db:"municipio_id"`
	Activo       bool       `json:"activo" db:"activo"`
	Vistas       int        `json:"vistas" db:"vistas"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// ListingFilter narrows public listing queries.
type ListingFilter struct {
	EstadoID    *uuid.UUID
	MunicipioID *uuid.UUID
	Search      string
}
