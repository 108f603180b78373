package repositories

import (
	"context"

	"tianguis/internal/models"

	"github.com/google/uuid"
)

type ColoniaRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Colonia, error)
	FindByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error)
}

type coloniaRepo struct {
	db Database
}

func NewColoniaRepo(db Database) ColoniaRepository {
	return &coloniaRepo{db: db}
}

func (r *coloniaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Colonia, error) {
	colonia := &models.Colonia{}
	query := `
		SELECT id, nombre, codigo_postal, municipio_id, estado_id, created_at, updated_at
		FROM colonias
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&colonia.ID, &colonia.Nombre, &colonia.CodigoPostal, &colonia.MunicipioID, &colonia.EstadoID, &colonia.CreatedAt, &colonia.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return colonia, nil
}

func (r *coloniaRepo) FindByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error) {
	query := `
		SELECT id, nombre, codigo_postal, municipio_id, estado_id, created_at, updated_at
		FROM colonias
		WHERE codigo_postal = $1
		ORDER BY nombre ASC
	`
	rows, err := r.db.Query(ctx, query, codigoPostal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colonias []*models.Colonia
	for rows.Next() {
		colonia := &models.Colonia{}
		if err := rows.Scan(&colonia.ID, &colonia.Nombre, &colonia.CodigoPostal, &colonia.MunicipioID, &colonia.EstadoID, &colonia.CreatedAt, &colonia.UpdatedAt); err != nil {
			return nil, err
		}
		colonias = append(colonias, colonia)
	}
	return colonias, rows.Err()
}
