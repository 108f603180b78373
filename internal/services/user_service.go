package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tianguis/internal/common"
	"tianguis/internal/models"
	"tianguis/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the registration payload after handler-level parsing.
type RegisterInput struct {
	Email        string
	Password     string
	Nombre       *string
	Telefono     *string
	CodigoPostal string
	EstadoID     *uuid.UUID
	MunicipioID  *uuid.UUID
	ColoniaID    *uuid.UUID
}

// UpdateProfileInput carries optional profile changes. Location fields are
// merged with the stored ones and revalidated as a whole.
type UpdateProfileInput struct {
	Email        *string
	Password     *string
	Nombre       *string
	Telefono     *string
	CodigoPostal *string
	EstadoID     *uuid.UUID
	MunicipioID  *uuid.UUID
	ColoniaID    *uuid.UUID
}

// UserService covers registration, login and profile management. Passwords
// are hashed here, on the write path, before anything reaches the repository;
// plaintext is never stored or logged.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo     repositories.UserRepository
	geographySvc GeographyService
	jwtSecret    []byte
	tokenTTL     time.Duration
}

func NewUserService(userRepo repositories.UserRepository, geographySvc GeographyService, jwtSecret string) UserService {
	return &userService{
		userRepo:     userRepo,
		geographySvc: geographySvc,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     7 * 24 * time.Hour,
	}
}

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	telefonoPattern = regexp.MustCompile(`^\d{10,13}$`)
)

func (s *userService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, "", common.NewValidationError("email", "el correo electrónico no es válido")
	}
	if len(input.Password) < 8 {
		return nil, "", common.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	if input.Telefono != nil && *input.Telefono != "" && !telefonoPattern.MatchString(*input.Telefono) {
		return nil, "", common.NewValidationError("telefono", "el teléfono debe contener entre 10 y 13 dígitos")
	}

	// Registration carries a postal code, so the colonia is mandatory here.
	resolved, err := s.geographySvc.ValidateLocation(ctx, LocationInput{
		EstadoID:     input.EstadoID,
		MunicipioID:  input.MunicipioID,
		ColoniaID:    input.ColoniaID,
		CodigoPostal: &input.CodigoPostal,
	}, true)
	if err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	coloniaID := resolved.Colonia.ID
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       input.Nombre,
		Telefono:     input.Telefono,
		CodigoPostal: input.CodigoPostal,
		ColoniaID:    &coloniaID,
		EstadoID:     resolved.Estado.ID,
		MunicipioID:  resolved.Municipio.ID,
		Activo:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, "", common.ErrEmailExists
		}
		return nil, "", err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.Activo {
		return nil, "", common.ErrAccountInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.NewNotFound("usuario")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.NewNotFound("usuario")
		}
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !emailPattern.MatchString(email) {
			return nil, common.NewValidationError("email", "el correo electrónico no es válido")
		}
		user.Email = email
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, common.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.Nombre != nil {
		user.Nombre = input.Nombre
	}
	if input.Telefono != nil {
		if *input.Telefono != "" && !telefonoPattern.MatchString(*input.Telefono) {
			return nil, common.NewValidationError("telefono", "el teléfono debe contener entre 10 y 13 dígitos")
		}
		user.Telefono = input.Telefono
	}

	if input.EstadoID != nil || input.MunicipioID != nil || input.ColoniaID != nil || input.CodigoPostal != nil {
		// Merge the submitted subset with the stored location and validate
		// the result as a whole; partial updates must not break consistency.
		estadoID := user.EstadoID
		if input.EstadoID != nil {
			estadoID = *input.EstadoID
		}
		municipioID := user.MunicipioID
		if input.MunicipioID != nil {
			municipioID = *input.MunicipioID
		}
		coloniaID := user.ColoniaID
		if input.ColoniaID != nil {
			coloniaID = input.ColoniaID
		}
		codigoPostal := user.CodigoPostal
		if input.CodigoPostal != nil {
			codigoPostal = *input.CodigoPostal
		}

		resolved, err := s.geographySvc.ValidateLocation(ctx, LocationInput{
			EstadoID:     &estadoID,
			MunicipioID:  &municipioID,
			ColoniaID:    coloniaID,
			CodigoPostal: &codigoPostal,
		}, false)
		if err != nil {
			return nil, err
		}
		user.EstadoID = resolved.Estado.ID
		user.MunicipioID = resolved.Municipio.ID
		user.ColoniaID = nil
		if resolved.Colonia != nil {
			cid := resolved.Colonia.ID
			user.ColoniaID = &cid
		}
		user.CodigoPostal = codigoPostal
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, common.ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return common.NewNotFound("usuario")
		}
		return err
	}
	return s.userRepo.Deactivate(ctx, id)
}

func (s *userService) generateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
