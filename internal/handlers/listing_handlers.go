package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"tianguis/internal/common"
	"tianguis/internal/models"
	"tianguis/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB per file

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ListingHandlers handles HTTP requests for listings, including multipart
// image uploads.
type ListingHandlers struct {
	listingService services.ListingService
}

func NewListingHandlers(listingService services.ListingService) *ListingHandlers {
	return &ListingHandlers{listingService: listingService}
}

// listingResponse augments a listing with resolved image URLs.
type listingResponse struct {
	*models.Listing
	ImageURLs []string `json:"image_urls"`
}

func (h *ListingHandlers) toResponse(listing *models.Listing) *listingResponse {
	return &listingResponse{Listing: listing, ImageURLs: h.listingService.ImageURLs(listing)}
}

func (h *ListingHandlers) toResponses(listings []*models.Listing) []*listingResponse {
	out := make([]*listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, h.toResponse(l))
	}
	return out
}

// collectImages validates and opens the multipart files under the "imagenes"
// field: at most 5 files, 5MB each, JPEG/PNG/WebP only. Callers must close
// the returned closers.
func collectImages(c echo.Context) ([]services.ImageUpload, []multipart.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, nil // no multipart body, no images
	}
	files := form.File["imagenes"]
	if len(files) > 5 {
		return nil, nil, common.NewValidationError("imagenes", "se excedió el número máximo de archivos (5)")
	}

	var uploads []services.ImageUpload
	var opened []multipart.File
	for _, fh := range files {
		if fh.Size > maxImageSize {
			closeAll(opened)
			return nil, nil, common.NewValidationError("imagenes", "el archivo excede el tamaño máximo de 5MB")
		}
		contentType := fh.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			closeAll(opened)
			return nil, nil, common.NewValidationError("imagenes", "tipo de archivo no permitido, solo se aceptan JPG, PNG y WebP")
		}
		f, err := fh.Open()
		if err != nil {
			closeAll(opened)
			return nil, nil, err
		}
		opened = append(opened, f)
		uploads = append(uploads, services.ImageUpload{
			Filename:    fh.Filename,
			ContentType: contentType,
			Reader:      f,
			Size:        fh.Size,
		})
	}
	return uploads, opened, nil
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}

// ListListings handles GET /api/listings (public)
func (h *ListingHandlers) ListListings(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.ListingFilter{
		EstadoID:    parseOptionalUUID(c.QueryParam("estado")),
		MunicipioID: parseOptionalUUID(c.QueryParam("municipio")),
		Search:      c.QueryParam("search"),
	}
	page, limit := common.ParsePagination(c)

	result, err := h.listingService.List(ctx, filter, page, limit)
	if err != nil {
		return common.RespondError(c, err)
	}

	return common.RespondData(c, http.StatusOK, echo.Map{
		"listings":   h.toResponses(result.Listings),
		"pagination": result.Pagination,
	})
}

// GetListing handles GET /api/listings/:id (public, increments view counter)
func (h *ListingHandlers) GetListing(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.NewValidationError("id", "ID de anuncio inválido"))
	}

	listing, err := h.listingService.Get(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, echo.Map{"listing": h.toResponse(listing)})
}

// CreateListing handles POST /api/listings (multipart form)
func (h *ListingHandlers) CreateListing(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	precio, err := strconv.ParseFloat(c.FormValue("precio"), 64)
	if err != nil {
		return common.RespondError(c, common.NewValidationError("precio", "el precio no es válido"))
	}

	input := services.CreateListingInput{
		Titulo:       c.FormValue("titulo"),
		Descripcion:  c.FormValue("descripcion"),
		Precio:       precio,
		CodigoPostal: c.FormValue("codigoPostal"),
		EstadoID:     parseOptionalUUID(c.FormValue("estado")),
		MunicipioID:  parseOptionalUUID(c.FormValue("municipio")),
		ColoniaID:    parseOptionalUUID(c.FormValue("colonia")),
	}

	uploads, opened, err := collectImages(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	defer closeAll(opened)

	listing, err := h.listingService.Create(ctx, userID, input, uploads)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusCreated, echo.Map{"listing": h.toResponse(listing)})
}

// UpdateListing handles PUT /api/listings/:id (multipart form, fields optional)
func (h *ListingHandlers) UpdateListing(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.NewValidationError("id", "ID de anuncio inválido"))
	}

	input := services.UpdateListingInput{}
	if v := c.FormValue("titulo"); v != "" {
		input.Titulo = &v
	}
	if v := c.FormValue("descripcion"); v != "" {
		input.Descripcion = &v
	}
	if v := c.FormValue("precio"); v != "" {
		precio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return common.RespondError(c, common.NewValidationError("precio", "el precio no es válido"))
		}
		input.Precio = &precio
	}
	if v := c.FormValue("codigoPostal"); v != "" {
		input.CodigoPostal = &v
	}
	input.EstadoID = parseOptionalUUID(c.FormValue("estado"))
	input.MunicipioID = parseOptionalUUID(c.FormValue("municipio"))
	input.ColoniaID = parseOptionalUUID(c.FormValue("colonia"))

	uploads, opened, err := collectImages(c)
	if err != nil {
		return common.RespondError(c, err)
	}
	defer closeAll(opened)

	listing, err := h.listingService.Update(ctx, id, userID, input, uploads)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, echo.Map{"listing": h.toResponse(listing)})
}

// DeleteListing handles DELETE /api/listings/:id (soft delete)
func (h *ListingHandlers) DeleteListing(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.NewValidationError("id", "ID de anuncio inválido"))
	}

	if err := h.listingService.Delete(ctx, id, userID); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, echo.Map{"message": "anuncio eliminado exitosamente"})
}

// ListUserListings handles GET /api/listings/user/:userId
func (h *ListingHandlers) ListUserListings(c echo.Context) error {
	ctx := c.Request().Context()

	requesterID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	usuarioID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return common.RespondError(c, common.NewValidationError("userId", "ID de usuario inválido"))
	}

	includeInactive := c.QueryParam("includeInactive") == "true"
	page, limit := common.ParsePagination(c)

	result, err := h.listingService.ListByUsuario(ctx, usuarioID, requesterID, includeInactive, page, limit)
	if err != nil {
		return common.RespondError(c, err)
	}

	return common.RespondData(c, http.StatusOK, echo.Map{
		"listings":   h.toResponses(result.Listings),
		"pagination": result.Pagination,
	})
}
