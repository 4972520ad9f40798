package services

import (
	"errors"
	"fmt"
	"strings"

	"prodx/internal/validate"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidDecision = errors.New("invalid decision")
	ErrInvalidCompany  = errors.New("invalid company")
)

// ValidationError lists the form fields that failed; it matches
// ErrInvalidCompany with errors.Is.
type ValidationError struct {
	Kind   error
	Fields []validate.FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field+"("+f.Tag+")")
	}
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return e.Kind }
