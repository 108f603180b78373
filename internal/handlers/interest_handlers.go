package handlers

import (
	"net/http"

	"tianguis/internal/common"
	"tianguis/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InterestHandlers handles buyer-interest endpoints.
type InterestHandlers struct {
	interestService services.InterestService
}

func NewInterestHandlers(interestService services.InterestService) *InterestHandlers {
	return &InterestHandlers{interestService: interestService}
}

// CreateInterestRequest is the interest payload.
type CreateInterestRequest struct {
	Listing string  `json:"listing"`
	Mensaje *string `json:"mensaje"`
}

// CreateInterest handles POST /api/interests
func (h *InterestHandlers) CreateInterest(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req CreateInterestRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, common.NewValidationError("", "formato de solicitud inválido"))
	}

	listingID, err := uuid.Parse(req.Listing)
	if err != nil {
		return common.RespondError(c, common.NewValidationError("listing", "ID de anuncio inválido"))
	}

	interest, err := h.interestService.Create(ctx, listingID, userID, req.Mensaje)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusCreated, interest)
}

// ListReceived handles GET /api/interests/received (as seller)
func (h *InterestHandlers) ListReceived(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	interests, err := h.interestService.ListReceived(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, interests)
}

// ListSent handles GET /api/interests/sent (as buyer)
func (h *InterestHandlers) ListSent(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	interests, err := h.interestService.ListSent(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, interests)
}

// MarkRead handles PUT /api/interests/:id/read (seller only)
func (h *InterestHandlers) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.RespondError(c, common.NewValidationError("id", "ID de interés inválido"))
	}

	interest, err := h.interestService.MarkRead(ctx, id, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, interest)
}
