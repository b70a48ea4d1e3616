package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputSchema indica que uma coluna obrigatória não existe após a normalização
	ErrInputSchema = errors.New("input schema error")
	// ErrValidation indica parâmetros inválidos enviados pelo chamador
	ErrValidation = errors.New("validation error")
	// ErrBlobNotFound indica que o arquivo não existe ou já expirou
	ErrBlobNotFound = errors.New("blob not found")
)

// InputSchemaError nomeia as colunas obrigatórias ausentes de uma planilha
type InputSchemaError struct {
	Sheet   string
	Columns []string
}

func (e *InputSchemaError) Error() string {
	return fmt.Sprintf("sheet %q is missing required column(s): %s", e.Sheet, strings.Join(e.Columns, ", "))
}

func (e *InputSchemaError) Unwrap() error {
	return ErrInputSchema
}

// ValidationError descreve um parâmetro rejeitado antes de qualquer cálculo
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError cria um novo ValidationError
func NewValidationError(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
