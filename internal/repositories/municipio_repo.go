package repositories

import (
	"context"

	"tianguis/internal/models"

	"github.com/google/uuid"
)

type MunicipioRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Municipio, error)
	// FindByIDAndEstado fetches the municipio only if it belongs to the given
	// estado.
	FindByIDAndEstado(ctx context.Context, id, estadoID uuid.UUID) (*models.Municipio, error)
	ListByEstado(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error)
}

type municipioRepo struct {
	db Database
}

func NewMunicipioRepo(db Database) MunicipioRepository {
	return &municipioRepo{db: db}
}

func (r *municipioRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Municipio, error) {
	municipio := &models.Municipio{}
	query := `
		SELECT id, nombre, estado_id, created_at, updated_at
		FROM municipios
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&municipio.ID, &municipio.Nombre, &municipio.EstadoID, &municipio.CreatedAt, &municipio.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return municipio, nil
}

func (r *municipioRepo) FindByIDAndEstado(ctx context.Context, id, estadoID uuid.UUID) (*models.Municipio, error) {
	municipio := &models.Municipio{}
	query := `
		SELECT id, nombre, estado_id, created_at, updated_at
		FROM municipios
		WHERE id = $1 AND estado_id = $2
	`
	err := r.db.QueryRow(ctx, query, id, estadoID).Scan(&municipio.ID, &municipio.Nombre, &municipio.EstadoID, &municipio.CreatedAt, &municipio.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return municipio, nil
}

func (r *municipioRepo) ListByEstado(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error) {
	query := `
		SELECT id, nombre, estado_id, created_at, updated_at
		FROM municipios
		WHERE estado_id = $1
		ORDER BY nombre ASC
	`
	rows, err := r.db.Query(ctx, query, estadoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var municipios []*models.Municipio
	for rows.Next() {
		municipio := &models.Municipio{}
		if err := rows.Scan(&municipio.ID, &municipio.Nombre, &municipio.EstadoID, &municipio.CreatedAt, &municipio.UpdatedAt); err != nil {
			return nil, err
		}
		municipios = append(municipios, municipio)
	}
	return municipios, rows.Err()
}
