package repositories

import (
	"context"
	"fmt"

	"tianguis/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

// Create inserts the user. A duplicate email surfaces as a unique violation
// from the email index rather than a pre-check, so concurrent registrations
// cannot slip through.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, nombre, telefono, codigo_postal, colonia_id, estado_id, municipio_id, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.Nombre, user.Telefono, user.CodigoPostal, user.ColoniaID, user.EstadoID, user.MunicipioID, user.Activo)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, nombre, telefono, codigo_postal, colonia_id, estado_id, municipio_id, activo, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Nombre, &user.Telefono, &user.CodigoPostal, &user.ColoniaID, &user.EstadoID, &user.MunicipioID, &user.Activo, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, nombre, telefono, codigo_postal, colonia_id, estado_id, municipio_id, activo, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Nombre, &user.Telefono, &user.CodigoPostal, &user.ColoniaID, &user.EstadoID, &user.MunicipioID, &user.Activo, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, nombre = $3, telefono = $4, codigo_postal = $5, colonia_id = $6, estado_id = $7, municipio_id = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query, user.Email, user.PasswordHash, user.Nombre, user.Telefono, user.CodigoPostal, user.ColoniaID, user.EstadoID, user.MunicipioID, user.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Deactivate soft-deletes the account. User rows are never hard-deleted.
func (r *userRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET activo = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
