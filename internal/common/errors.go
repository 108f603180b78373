package common

import (
	"fmt"
	"net/http"
)

// DomainError is a per-request, reportable failure. Code matches the API error
// taxonomy; Field names the offending input for validation failures. No
// DomainError is fatal to the process.
type DomainError struct {
	Code    string
	Field   string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Geography validation failures (all 400, field-qualified).
var (
	ErrInvalidEstado = &DomainError{
		Code: "INVALID_ESTADO", Field: "estado",
		Message: "el estado seleccionado no existe",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidMunicipio = &DomainError{
		Code: "INVALID_MUNICIPIO", Field: "municipio",
		Message: "el municipio seleccionado no existe o no pertenece al estado",
		Status:  http.StatusBadRequest,
	}
	ErrMissingColonia = &DomainError{
		Code: "MISSING_COLONIA", Field: "colonia",
		Message: "la colonia es requerida",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidColonia = &DomainError{
		Code: "INVALID_COLONIA", Field: "colonia",
		Message: "la colonia seleccionada no existe",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidCodigoPostal = &DomainError{
		Code: "INVALID_CODIGO_POSTAL", Field: "codigoPostal",
		Message: "el código postal debe tener 5 dígitos",
		Status:  http.StatusBadRequest,
	}
)

// NewColoniaMismatch reports a colonia whose municipio or estado reference
// does not match the stated one; field names the mismatched reference.
func NewColoniaMismatch(field string) *DomainError {
	return &DomainError{
		Code:    "COLONIA_MISMATCH",
		Field:   field,
		Message: fmt.Sprintf("la colonia no pertenece al %s seleccionado", field),
		Status:  http.StatusBadRequest,
	}
}

// Conflict, authorization and business-rule failures.
var (
	ErrEmailExists = &DomainError{
		Code: "EMAIL_EXISTS", Field: "email",
		Message: "el correo electrónico ya está registrado",
		Status:  http.StatusConflict,
	}
	ErrInterestExists = &DomainError{
		Code:    "INTEREST_ALREADY_EXISTS",
		Message: "ya has expresado interés en este anuncio",
		Status:  http.StatusConflict,
	}
	ErrSelfInterest = &DomainError{
		Code:    "SELF_INTEREST_NOT_ALLOWED",
		Message: "no puedes expresar interés en tu propio anuncio",
		Status:  http.StatusBadRequest,
	}
	ErrListingInactive = &DomainError{
		Code:    "LISTING_INACTIVE",
		Message: "este anuncio ya no está disponible",
		Status:  http.StatusBadRequest,
	}
	ErrListingNotAvailable = &DomainError{
		Code:    "LISTING_NOT_AVAILABLE",
		Message: "anuncio no disponible",
		Status:  http.StatusNotFound,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "credenciales incorrectas",
		Status:  http.StatusUnauthorized,
	}
	ErrAccountInactive = &DomainError{
		Code:    "ACCOUNT_INACTIVE",
		Message: "la cuenta está inactiva",
		Status:  http.StatusUnauthorized,
	}
)

// NewForbidden reports an ownership violation.
func NewForbidden(message string) *DomainError {
	return &DomainError{Code: "FORBIDDEN", Message: message, Status: http.StatusForbidden}
}

// NewNotFound reports a missing resource by name.
func NewNotFound(resource string) *DomainError {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s no encontrado", resource),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError reports a request-shape failure outside the geography
// taxonomy (missing fields, bad lengths).
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Field:   field,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}
