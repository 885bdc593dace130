package receipt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no receipt is stored under an id
	ErrNotFound = errors.New("receipt not found")

	// ErrInvalidID is returned when an id is not a v4 UUID
	ErrInvalidID = errors.New("invalid receipt id")
)

// FieldError describes why a single field failed validation
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError carries every field-level failure found in a document
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "Receipt validation failed: " + strings.Join(parts, "; ")
}

// add records a failure for field
func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// Has reports whether field failed validation
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
