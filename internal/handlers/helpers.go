package handlers

import "github.com/google/uuid"

// parseOptionalUUID turns a possibly-empty or malformed UUID string into a
// pointer; nil means "not supplied" and lets the validator report the
// reference as invalid or missing.
func parseOptionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
