package handlers

import (
	"net/http"

	"tianguis/internal/common"
	"tianguis/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandlers handles the self-service profile endpoints. Every operation is
// restricted to the authenticated account itself.
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

func (h *UserHandlers) selfID(c echo.Context) (uuid.UUID, error) {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	paramID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, common.RespondError(c, common.NewValidationError("id", "ID de usuario inválido"))
	}
	if paramID != userID {
		return uuid.Nil, common.RespondError(c, common.NewForbidden("no tienes permiso para acceder a esta cuenta"))
	}
	return userID, nil
}

// GetUser handles GET /api/users/:id
func (h *UserHandlers) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := h.selfID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, echo.Map{"user": user})
}

// UpdateUserRequest carries optional profile changes.
type UpdateUserRequest struct {
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Nombre       *string `json:"nombre"`
	Telefono     *string `json:"telefono"`
	CodigoPostal *string `json:"codigoPostal"`
	Estado       *string `json:"estado"`
	Municipio    *string `json:"municipio"`
	Colonia      *string `json:"colonia"`
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := h.selfID(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, common.NewValidationError("", "formato de solicitud inválido"))
	}

	input := services.UpdateProfileInput{
		Email:        req.Email,
		Password:     req.Password,
		Nombre:       req.Nombre,
		Telefono:     req.Telefono,
		CodigoPostal: req.CodigoPostal,
	}
	if req.Estado != nil {
		input.EstadoID = parseOptionalUUID(*req.Estado)
	}
	if req.Municipio != nil {
		input.MunicipioID = parseOptionalUUID(*req.Municipio)
	}
	if req.Colonia != nil {
		input.ColoniaID = parseOptionalUUID(*req.Colonia)
	}

	user, err := h.userService.UpdateProfile(ctx, userID, input)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, echo.Map{"user": user})
}

// DeleteUser handles DELETE /api/users/:id (soft delete)
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := h.selfID(c)
	if err != nil {
		return err
	}

	if err := h.userService.Deactivate(ctx, userID); err != nil {
		return common.RespondError(c, err)
	}
	return common.RespondData(c, http.StatusOK, echo.Map{"message": "cuenta dada de baja exitosamente"})
}
