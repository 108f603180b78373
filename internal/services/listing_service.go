package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"tianguis/internal/common"
	"tianguis/internal/models"
	"tianguis/internal/repositories"

	"github.com/google/uuid"
)

// ImageUpload is one incoming listing image, already size- and type-checked
// by the handler.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
	Size        int64
}

// CreateListingInput is the listing payload after handler-level parsing.
type CreateListingInput struct {
	Titulo       string
	Descripcion  string
	Precio       float64
	CodigoPostal string
	EstadoID     *uuid.UUID
	MunicipioID  *uuid.UUID
	ColoniaID    *uuid.UUID
}

// UpdateListingInput carries optional listing changes.
type UpdateListingInput struct {
	Titulo       *string
	Descripcion  *string
	Precio       *float64
	CodigoPostal *string
	EstadoID     *uuid.UUID
	MunicipioID  *uuid.UUID
	ColoniaID    *uuid.UUID
}

// ListListingsResult bundles a page of listings with its pagination envelope.
type ListListingsResult struct {
	Listings   []*models.Listing
	Pagination common.Pagination
}

type ListingService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateListingInput, images []ImageUpload) (*models.Listing, error)
	// Get returns an active listing and bumps its view counter best-effort.
	Get(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, input UpdateListingInput, images []ImageUpload) (*models.Listing, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	List(ctx context.Context, filter *models.ListingFilter, page, limit int) (*ListListingsResult, error)
	ListByUsuario(ctx context.Context, usuarioID, requesterID uuid.UUID, includeInactive bool, page, limit int) (*ListListingsResult, error)
	// ImageURLs resolves stored object keys into presigned GET URLs.
	ImageURLs(listing *models.Listing) []string
}

const (
	maxListingImages = 5
	imageURLExpiry   = 15 * time.Minute
)

type listingService struct {
	listingRepo  repositories.ListingRepository
	geographySvc GeographyService
	minioService MinioService
	bucket       string
}

func NewListingService(listingRepo repositories.ListingRepository, geographySvc GeographyService, minioService MinioService, bucket string) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		geographySvc: geographySvc,
		minioService: minioService,
		bucket:       bucket,
	}
}

func validateListingFields(titulo, descripcion string, precio float64) error {
	if strings.TrimSpace(titulo) == "" {
		return common.NewValidationError("titulo", "el título es requerido")
	}
	if len(titulo) > 100 {
		return common.NewValidationError("titulo", "el título no puede exceder 100 caracteres")
	}
	if strings.TrimSpace(descripcion) == "" {
		return common.NewValidationError("descripcion", "la descripción es requerida")
	}
	if len(descripcion) > 1000 {
		return common.NewValidationError("descripcion", "la descripción no puede exceder 1000 caracteres")
	}
	if precio < 0 {
		return common.NewValidationError("precio", "el precio no puede ser negativo")
	}
	return nil
}

func (s *listingService) Create(ctx context.Context, ownerID uuid.UUID, input CreateListingInput, images []ImageUpload) (*models.Listing, error) {
	if err := validateListingFields(input.Titulo, input.Descripcion, input.Precio); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, common.NewValidationError("imagenes", "debe subir al menos una imagen")
	}
	if len(images) > maxListingImages {
		return nil, common.NewValidationError("imagenes", fmt.Sprintf("no se pueden subir más de %d imágenes", maxListingImages))
	}

	// Listing creation carries a postal code, so the colonia is mandatory.
	resolved, err := s.geographySvc.ValidateLocation(ctx, LocationInput{
		EstadoID:     input.EstadoID,
		MunicipioID:  input.MunicipioID,
		ColoniaID:    input.ColoniaID,
		CodigoPostal: &input.CodigoPostal,
	}, true)
	if err != nil {
		return nil, err
	}

	listingID := uuid.New()
	keys, err := s.uploadImages(ctx, listingID, images)
	if err != nil {
		return nil, err
	}

	coloniaID := resolved.Colonia.ID
	listing := &models.Listing{
		ID:           listingID,
		Titulo:       input.Titulo,
		Descripcion:  input.Descripcion,
		Precio:       input.Precio,
		Imagenes:     keys,
		UsuarioID:    ownerID,
		CodigoPostal: input.CodigoPostal,
		ColoniaID:    &coloniaID,
		EstadoID:     resolved.Estado.ID,
		MunicipioID:  resolved.Municipio.ID,
		Activo:       true,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) Get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.NewNotFound("anuncio")
		}
		return nil, err
	}
	if !listing.Activo {
		return nil, common.ErrListingNotAvailable
	}

	// Atomic increment at the storage layer; a lost increment under failure
	// is acceptable, a failed read is not.
	if err := s.listingRepo.IncrementVistas(ctx, id); err != nil {
		log.Printf("failed to increment vistas for listing %s: %v", id, err)
	} else {
		listing.Vistas++
	}
	return listing, nil
}

func (s *listingService) Update(ctx context.Context, id, ownerID uuid.UUID, input UpdateListingInput, images []ImageUpload) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, common.NewNotFound("anuncio")
		}
		return nil, err
	}
	if listing.UsuarioID != ownerID {
		return nil, common.NewForbidden("no tienes permiso para modificar este anuncio")
	}

	if input.Titulo != nil {
		listing.Titulo = *input.Titulo
	}
	if input.Descripcion != nil {
		listing.Descripcion = *input.Descripcion
	}
	if input.Precio != nil {
		listing.Precio = *input.Precio
	}
	if err := validateListingFields(listing.Titulo, listing.Descripcion, listing.Precio); err != nil {
		return nil, err
	}

	if input.EstadoID != nil || input.MunicipioID != nil || input.ColoniaID != nil || input.CodigoPostal != nil {
		estadoID := listing.EstadoID
		if input.EstadoID != nil {
			estadoID = *input.EstadoID
		}
		municipioID := listing.MunicipioID
		if input.MunicipioID != nil {
			municipioID = *input.MunicipioID
		}
		coloniaID := listing.ColoniaID
		if input.ColoniaID != nil {
			coloniaID = input.ColoniaID
		}
		codigoPostal := listing.CodigoPostal
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
		listing.EstadoID = resolved.Estado.ID
		listing.MunicipioID = resolved.Municipio.ID
		listing.ColoniaID = nil
		if resolved.Colonia != nil {
			cid := resolved.Colonia.ID
			listing.ColoniaID = &cid
		}
		listing.CodigoPostal = codigoPostal
	}

	if len(images) > 0 {
		if len(images) > maxListingImages {
			return nil, common.NewValidationError("imagenes", fmt.Sprintf("no se pueden subir más de %d imágenes", maxListingImages))
		}
		keys, err := s.uploadImages(ctx, listing.ID, images)
		if err != nil {
			return nil, err
		}
		for _, old := range listing.Imagenes {
			if err := s.minioService.DeleteImage(ctx, s.bucket, old); err != nil {
				log.Printf("failed to delete replaced image %s: %v", old, err)
			}
		}
		listing.Imagenes = keys
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *listingService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return common.NewNotFound("anuncio")
		}
		return err
	}
	if listing.UsuarioID != ownerID {
		return common.NewForbidden("no tienes permiso para eliminar este anuncio")
	}
	return s.listingRepo.Deactivate(ctx, id)
}

func (s *listingService) List(ctx context.Context, filter *models.ListingFilter, page, limit int) (*ListListingsResult, error) {
	offset := (page - 1) * limit
	listings, err := s.listingRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.listingRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListListingsResult{
		Listings:   listings,
		Pagination: paginate(page, limit, total),
	}, nil
}

func (s *listingService) ListByUsuario(ctx context.Context, usuarioID, requesterID uuid.UUID, includeInactive bool, page, limit int) (*ListListingsResult, error) {
	// Only the owner may see their inactive listings.
	if usuarioID != requesterID {
		includeInactive = false
	}
	offset := (page - 1) * limit
	listings, err := s.listingRepo.ListByUsuario(ctx, usuarioID, includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.listingRepo.CountByUsuario(ctx, usuarioID, includeInactive)
	if err != nil {
		return nil, err
	}
	return &ListListingsResult{
		Listings:   listings,
		Pagination: paginate(page, limit, total),
	}, nil
}

func (s *listingService) ImageURLs(listing *models.Listing) []string {
	urls := make([]string, 0, len(listing.Imagenes))
	for _, key := range listing.Imagenes {
		url, err := s.minioService.GetPresignedURL(s.bucket, key, imageURLExpiry)
		if err != nil {
			log.Printf("failed to presign image %s: %v", key, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func (s *listingService) uploadImages(ctx context.Context, listingID uuid.UUID, images []ImageUpload) ([]string, error) {
	if err := s.minioService.EnsureBucketExists(ctx, s.bucket); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	keys := make([]string, 0, len(images))
	for _, img := range images {
		ext := filepath.Ext(img.Filename)
		key := fmt.Sprintf("%s/%s%s", listingID.String(), uuid.New().String(), ext)
		if err := s.minioService.UploadImage(ctx, s.bucket, key, img.ContentType, img.Reader, img.Size); err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", img.Filename, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func paginate(page, limit, total int) common.Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return common.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
