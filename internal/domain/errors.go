package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOverpayment        = errors.New("el pago excede el saldo pendiente")
	ErrDateRange          = errors.New("rango de fechas inválido")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
)

// ValidationError reporta los campos faltantes o mal formados de una petición.
// No deja efectos secundarios: quien la recibe puede corregir y reintentar.
type ValidationError struct {
	Fields []string
}

// NewValidationError construye el error con el conjunto de campos ofensores.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campos requeridos o inválidos: %s", strings.Join(e.Fields, ", "))
}

// IsValidation indica si err es (o envuelve) un ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
