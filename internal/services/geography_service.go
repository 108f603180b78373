package services

import (
	"context"
	"log"
	"regexp"
	"time"

	"tianguis/internal/caching"
	"tianguis/internal/common"
	"tianguis/internal/models"
	"tianguis/internal/repositories"

	"github.com/google/uuid"
)

// LocationInput is a candidate location reference as submitted by a client.
type LocationInput struct {
	EstadoID     *uuid.UUID
	MunicipioID  *uuid.UUID
	ColoniaID    *uuid.UUID
	CodigoPostal *string
}

// ResolvedLocation is the validated tuple returned on success.
type ResolvedLocation struct {
	Estado    *models.Estado
	Municipio *models.Municipio
	Colonia   *models.Colonia
}

// GeographyService validates candidate locations against the estado →
// municipio → colonia tree and serves the client-facing lookups that populate
// location pickers. ValidateLocation is the single shared implementation for
// registration, profile update and listing create/update; only the
// requireColonia flag differs per call site.
type GeographyService interface {
	ValidateLocation(ctx context.Context, input LocationInput, requireColonia bool) (*ResolvedLocation, error)
	ListEstados(ctx context.Context) ([]*models.Estado, error)
	ListMunicipiosByEstado(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error)
	GetMunicipio(ctx context.Context, id uuid.UUID) (*models.Municipio, error)
	FindColoniasByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error)
}

type geographyService struct {
	estadoRepo    repositories.EstadoRepository
	municipioRepo repositories.MunicipioRepository
	coloniaRepo   repositories.ColoniaRepository
	cacheService  caching.CacheService
}

func NewGeographyService(estadoRepo repositories.EstadoRepository, municipioRepo repositories.MunicipioRepository, coloniaRepo repositories.ColoniaRepository, cacheService caching.CacheService) GeographyService {
	return &geographyService{
		estadoRepo:    estadoRepo,
		municipioRepo: municipioRepo,
		coloniaRepo:   coloniaRepo,
		cacheService:  cacheService,
	}
}

var codigoPostalPattern = regexp.MustCompile(`^\d{5}$`)

const geographyCacheTTL = 15 * time.Minute

// ValidateLocation checks the candidate location for internal consistency, in
// order: estado exists, municipio exists under that estado, colonia present
// when required, colonia's references match, codigo postal is 5 digits. It is
// a pure function of the store state: identical input yields an identical
// result.
func (s *geographyService) ValidateLocation(ctx context.Context, input LocationInput, requireColonia bool) (*ResolvedLocation, error) {
	if input.EstadoID == nil {
		return nil, common.ErrInvalidEstado
	}
	estado, err := s.estadoRepo.GetByID(ctx, *input.EstadoID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.ErrInvalidEstado
		}
		return nil, err
	}

	if input.MunicipioID == nil {
		return nil, common.ErrInvalidMunicipio
	}
	municipio, err := s.municipioRepo.FindByIDAndEstado(ctx, *input.MunicipioID, estado.ID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.ErrInvalidMunicipio
		}
		return nil, err
	}

	if requireColonia && input.ColoniaID == nil {
		return nil, common.ErrMissingColonia
	}

	resolved := &ResolvedLocation{Estado: estado, Municipio: municipio}

	if input.ColoniaID != nil {
		colonia, err := s.coloniaRepo.GetByID(ctx, *input.ColoniaID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return nil, common.ErrInvalidColonia
			}
			return nil, err
		}
		if colonia.MunicipioID != municipio.ID {
			return nil, common.NewColoniaMismatch("municipio")
		}
		if colonia.EstadoID != estado.ID {
			return nil, common.NewColoniaMismatch("estado")
		}
		resolved.Colonia = colonia
	}

	if input.CodigoPostal != nil && !codigoPostalPattern.MatchString(*input.CodigoPostal) {
		return nil, common.ErrInvalidCodigoPostal
	}

	return resolved, nil
}

func (s *geographyService) ListEstados(ctx context.Context) ([]*models.Estado, error) {
	if cached, err := s.cacheService.GetEstados(ctx); err != nil {
		log.Printf("estados cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	estados, err := s.estadoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetEstados(ctx, estados, geographyCacheTTL); err != nil {
		log.Printf("estados cache write failed: %v", err)
	}
	return estados, nil
}

func (s *geographyService) ListMunicipiosByEstado(ctx context.Context, estadoID uuid.UUID) ([]*models.Municipio, error) {
	if _, err := s.estadoRepo.GetByID(ctx, estadoID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.NewNotFound("estado")
		}
		return nil, err
	}

	if cached, err := s.cacheService.GetMunicipios(ctx, estadoID); err != nil {
		log.Printf("municipios cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	municipios, err := s.municipioRepo.ListByEstado(ctx, estadoID)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetMunicipios(ctx, estadoID, municipios, geographyCacheTTL); err != nil {
		log.Printf("municipios cache write failed: %v", err)
	}
	return municipios, nil
}

func (s *geographyService) GetMunicipio(ctx context.Context, id uuid.UUID) (*models.Municipio, error) {
	municipio, err := s.municipioRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.NewNotFound("municipio")
		}
		return nil, err
	}
	return municipio, nil
}

func (s *geographyService) FindColoniasByCodigoPostal(ctx context.Context, codigoPostal string) ([]*models.Colonia, error) {
	if !codigoPostalPattern.MatchString(codigoPostal) {
		return nil, common.ErrInvalidCodigoPostal
	}

	if cached, err := s.cacheService.GetColoniasByCodigoPostal(ctx, codigoPostal); err != nil {
		log.Printf("colonias cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	colonias, err := s.coloniaRepo.FindByCodigoPostal(ctx, codigoPostal)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetColoniasByCodigoPostal(ctx, codigoPostal, colonias, geographyCacheTTL); err != nil {
		log.Printf("colonias cache write failed: %v", err)
	}
	return colonias, nil
}
