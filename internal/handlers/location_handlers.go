package handlers

import (
	"net/http"

	"tianguis/internal/common"
	"tianguis/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LocationHandlers serves the public geography lookups that populate the
// location pickers.
type LocationHandlers struct {
	geographyService services.GeographyService
}

func NewLocationHandlers(geographyService services.GeographyService) *LocationHandlers {
	return &LocationHandlers{geographyService: geographyService}
}

// ListEstados handles GET /api/locations/estados
func (h *LocationHandlers) ListEstados(c echo.Context) error {
	ctx := c.Request().Context()

	estados, err := h.geographyService.ListEstados(ctx)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, estados)
}

// ListMunicipios handles GET /api/locations/estados/:id/municipios
func (h *LocationHandlers) ListMunicipios(c echo.Context) error {
	ctx := c.Request().Context()

	estadoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.NewValidationError("id", "ID de estado inválido"))
	}

	municipios, err := h.geographyService.ListMunicipiosByEstado(ctx, estadoID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, municipios)
}

// GetMunicipio handles GET /api/locations/municipios/:id
func (h *LocationHandlers) GetMunicipio(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.NewValidationError("id", "ID de municipio inválido"))
	}

	municipio, err := h.geographyService.GetMunicipio(ctx, id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, municipio)
}

// FindColonias handles GET /api/locations/colonias/cp/:codigoPostal
func (h *LocationHandlers) FindColonias(c echo.Context) error {
	ctx := c.Request().Context()

	colonias, err := h.geographyService.FindColoniasByCodigoPostal(ctx, c.Param("codigoPostal"))
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, colonias)
}
