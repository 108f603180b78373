package repositories

import (
	"context"
	"fmt"

	"tianguis/internal/models"

	"github.com/google/uuid"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *models.ListingFilter, limit, offset int) ([]*models.Listing, error)
	Count(ctx context.Context, filter *models.ListingFilter) (int, error)
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID, includeInactive bool, limit, offset int) ([]*models.Listing, error)
	CountByUsuario(ctx context.Context, usuarioID uuid.UUID, includeInactive bool) (int, error)
	// IncrementVistas bumps the view counter in a single atomic UPDATE. Lost
	// increments under failure are acceptable; lost updates from load-mutate-
	// save are not.
	IncrementVistas(ctx context.Context, id uuid.UUID) error
}

type listingRepo struct {
	db Database
}

func NewListingRepo(db Database) ListingRepository {
	return &listingRepo{db: db}
}

const listingColumns = `id, titulo, descripcion, precio, imagenes, usuario_id, codigo_postal, colonia_id, estado_id, municipio_id, activo, vistas, created_at, updated_at`

func (r *listingRepo) Create(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (id, titulo, descripcion, precio, imagenes, usuario_id, codigo_postal, colonia_id, estado_id, municipio_id, activo, vistas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, listing.ID, listing.Titulo, listing.Descripcion, listing.Precio, listing.Imagenes, listing.UsuarioID, listing.CodigoPostal, listing.ColoniaID, listing.EstadoID, listing.MunicipioID, listing.Activo)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *listingRepo) scanListing(row interface{ Scan(dest ...any) error }) (*models.Listing, error) {
	listing := &models.Listing{}
	err := row.Scan(&listing.ID, &listing.Titulo, &listing.Descripcion, &listing.Precio, &listing.Imagenes, &listing.UsuarioID, &listing.CodigoPostal, &listing.ColoniaID, &listing.EstadoID, &listing.MunicipioID, &listing.Activo, &listing.Vistas, &listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (r *listingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	return r.scanListing(r.db.QueryRow(ctx, query, id))
}

func (r *listingRepo) Update(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings
		SET titulo = $1, descripcion = $2, precio = $3, imagenes = $4, codigo_postal = $5, colonia_id = $6, estado_id = $7, municipio_id = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query, listing.Titulo, listing.Descripcion, listing.Precio, listing.Imagenes, listing.CodigoPostal, listing.ColoniaID, listing.EstadoID, listing.MunicipioID, listing.ID)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return nil
}

func (r *listingRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE listings SET activo = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// filterClause builds the WHERE clause for public listing queries. Only
// active listings are visible; estado/municipio narrow by reference and
// search matches titulo or descripcion case-insensitively.
func filterClause(filter *models.ListingFilter) (string, []any) {
	clause := `WHERE activo = TRUE`
	var args []any
	n := 1
	if filter != nil {
		if filter.EstadoID != nil {
			clause += fmt.Sprintf(" AND estado_id = $%d", n)
			args = append(args, *filter.EstadoID)
			n++
		}
		if filter.MunicipioID != nil {
			clause += fmt.Sprintf(" AND municipio_id = $%d", n)
			args = append(args, *filter.MunicipioID)
			n++
		}
		if filter.Search != "" {
			clause += fmt.Sprintf(" AND (titulo ILIKE $%d OR descripcion ILIKE $%d)", n, n)
			args = append(args, "%"+filter.Search+"%")
			n++
		}
	}
	return clause, args
}

func (r *listingRepo) List(ctx context.Context, filter *models.ListingFilter, limit, offset int) ([]*models.Listing, error) {
	clause, args := filterClause(filter)
	query := fmt.Sprintf(`SELECT %s FROM listings %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		listingColumns, clause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		listing, err := r.scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (r *listingRepo) Count(ctx context.Context, filter *models.ListingFilter) (int, error) {
	clause, args := filterClause(filter)
	query := `SELECT COUNT(*) FROM listings ` + clause
	var total int
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *listingRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID, includeInactive bool, limit, offset int) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE usuario_id = $1`
	if !includeInactive {
		query += ` AND activo = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, usuarioID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		listing, err := r.scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (r *listingRepo) CountByUsuario(ctx context.Context, usuarioID uuid.UUID, includeInactive bool) (int, error) {
	query := `SELECT COUNT(*) FROM listings WHERE usuario_id = $1`
	if !includeInactive {
		query += ` AND activo = TRUE`
	}
	var total int
	err := r.db.QueryRow(ctx, query, usuarioID).Scan(&total)
	return total, err
}

func (r *listingRepo) IncrementVistas(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE listings SET vistas = vistas + 1 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
