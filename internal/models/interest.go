package models

import (
	"time"

	"github.com/google/uuid"
)

// Interest records a buyer's expression of interest in a listing. Unique per
// (ListingID, UsuarioInteresadoID); the interested user is never the seller.
// Leido is mutated only by the seller.
type Interest struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	ListingID           uuid.UUID `json:"listing_id" db:"listing_id"`
	UsuarioInteresadoID uuid.UUID `json:"usuario_interesado_id" db:"usuario_interesado_id"`
	VendedorID          uuid.UUID `json:"vendedor_id" db:"vendedor_id"`
	Mensaje             *string   `json:"mensaje" db:"mensaje"`
	Leido               bool      `json:"leido" db:"leido"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}
