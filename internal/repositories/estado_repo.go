package repositories

import (
	"context"

	"tianguis/internal/models"

	"github.com/google/uuid"
)

type EstadoRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Estado, error)
	List(ctx context.Context) ([]*models.Estado, error)
}

type estadoRepo struct {
	db Database
}

func NewEstadoRepo(db Database) EstadoRepository {
	return &estadoRepo{db: db}
}

func (r *estadoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Estado, error) {
	estado := &models.Estado{}
	query := `
		SELECT id, nombre, codigo, created_at, updated_at
		FROM estados
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&estado.ID, &estado.Nombre, &estado.Codigo, &estado.CreatedAt, &estado.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return estado, nil
}

func (r *estadoRepo) List(ctx context.Context) ([]*models.Estado, error) {
	query := `
		SELECT id, nombre, codigo, created_at, updated_at
		FROM estados
		ORDER BY nombre ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var estados []*models.Estado
	for rows.Next() {
		estado := &models.Estado{}
		if err := rows.Scan(&estado.ID, &estado.Nombre, &estado.Codigo, &estado.CreatedAt, &estado.UpdatedAt); err != nil {
			return nil, err
		}
		estados = append(estados, estado)
	}
	return estados, rows.Err()
}
