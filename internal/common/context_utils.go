package common

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// GetUserIDFromContext extracts the authenticated user ID set by the JWT
// middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the standardized error envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// DataResponse is the standardized success envelope.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// Pagination describes a page of results.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// RespondData sends the success envelope.
func RespondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, DataResponse{Success: true, Data: data})
}

// RespondError translates an error into the envelope. DomainErrors keep their
// code, field and status; anything else becomes a generic 500 so internals
// never leak.
func RespondError(c echo.Context, err error) error {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return c.JSON(domainErr.Status, ErrorResponse{
			Error: ErrorBody{
				Message: domainErr.Message,
				Code:    domainErr.Code,
				Field:   domainErr.Field,
			},
		})
	}

	log.Printf("unexpected error handling %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorBody{Message: "error interno del servidor", Code: "SERVER_ERROR"},
	})
}

// ParsePagination reads page/limit query params with sane bounds.
func ParsePagination(c echo.Context) (page, limit int) {
	page = 1
	limit = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 {
		limit = l
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
