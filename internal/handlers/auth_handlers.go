package handlers

import (
	"net/http"

	"tianguis/internal/common"
	"tianguis/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login and the authenticated profile.
type AuthHandlers struct {
	userService services.UserService
}

func NewAuthHandlers(userService services.UserService) *AuthHandlers {
	return &AuthHandlers{userService: userService}
}

// RegisterRequest is the registration payload. Location references arrive as
// UUID strings from the location picker endpoints.
type RegisterRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Nombre       *string `json:"nombre"`
	Telefono     *string `json:"telefono"`
	CodigoPostal string  `json:"codigoPostal"`
	Estado       string  `json:"estado"`
	Municipio    string  `json:"municipio"`
	Colonia      string  `json:"colonia"`
}

// Register handles POST /api/auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, common.NewValidationError("", "formato de solicitud inválido"))
	}

	input := services.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Nombre:       req.Nombre,
		Telefono:     req.Telefono,
		CodigoPostal: req.CodigoPostal,
		EstadoID:     parseOptionalUUID(req.Estado),
		MunicipioID:  parseOptionalUUID(req.Municipio),
		ColoniaID:    parseOptionalUUID(req.Colonia),
	}

	user, token, err := h.userService.Register(ctx, input)
	if err != nil {
		return common.RespondError(c, err)
	}

	return common.RespondData(c, http.StatusCreated, echo.Map{
		"token": token,
		"user":  user,
	})
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.RespondError(c, common.NewValidationError("", "formato de solicitud inválido"))
	}
	if req.Email == "" || req.Password == "" {
		return common.RespondError(c, common.NewValidationError("email", "email y contraseña son requeridos"))
	}

	user, token, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return common.RespondError(c, err)
	}

	return common.RespondData(c, http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}

	return common.RespondData(c, http.StatusOK, echo.Map{"user": user})
}
