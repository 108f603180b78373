package repositories

import (
	"context"
	"fmt"

	"tianguis/internal/models"

	"github.com/google/uuid"
)

type InterestRepository interface {
	// Create inserts the interest; a duplicate (listing, interested user)
	// pair comes back as a unique violation from the composite index.
	Create(ctx context.Context, interest *models.Interest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Interest, error)
	ListByVendedor(ctx context.Context, vendedorID uuid.UUID) ([]*models.Interest, error)
	ListByInteresado(ctx context.Context, usuarioID uuid.UUID) ([]*models.Interest, error)
	MarkLeido(ctx context.Context, id uuid.UUID) error
}

type interestRepo struct {
	db Database
}

func NewInterestRepo(db Database) InterestRepository {
	return &interestRepo{db: db}
}

func (r *interestRepo) Create(ctx context.Context, interest *models.Interest) error {
	query := `
		INSERT INTO interests (id, listing_id, usuario_interesado_id, vendedor_id, mensaje, leido, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
	`
	_, err := r.db.Exec(ctx, query, interest.ID, interest.ListingID, interest.UsuarioInteresadoID, interest.VendedorID, interest.Mensaje)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create interest: %w", err)
	}
	return nil
}

func (r *interestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Interest, error) {
	interest := &models.Interest{}
	query := `
		SELECT id, listing_id, usuario_interesado_id, vendedor_id, mensaje, leido, created_at
		FROM interests
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&interest.ID, &interest.ListingID, &interest.UsuarioInteresadoID, &interest.VendedorID, &interest.Mensaje, &interest.Leido, &interest.CreatedAt)
	if err != nil {
		return nil, err
	}
	return interest, nil
}

func (r *interestRepo) listBy(ctx context.Context, column string, id uuid.UUID) ([]*models.Interest, error) {
	query := fmt.Sprintf(`
		SELECT id, listing_id, usuario_interesado_id, vendedor_id, mensaje, leido, created_at
		FROM interests
		WHERE %s = $1
		ORDER BY created_at DESC
	`, column)
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []*models.Interest
	for rows.Next() {
		interest := &models.Interest{}
		if err := rows.Scan(&interest.ID, &interest.ListingID, &interest.UsuarioInteresadoID, &interest.VendedorID, &interest.Mensaje, &interest.Leido, &interest.CreatedAt); err != nil {
			return nil, err
		}
		interests = append(interests, interest)
	}
	return interests, rows.Err()
}

func (r *interestRepo) ListByVendedor(ctx context.Context, vendedorID uuid.UUID) ([]*models.Interest, error) {
	return r.listBy(ctx, "vendedor_id", vendedorID)
}

func (r *interestRepo) ListByInteresado(ctx context.Context, usuarioID uuid.UUID) ([]*models.Interest, error) {
	return r.listBy(ctx, "usuario_interesado_id", usuarioID)
}

func (r *interestRepo) MarkLeido(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE interests SET leido = TRUE WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
