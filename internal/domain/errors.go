package domain

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica los fallos que cruzan hacia la capa de transporte.
// Cada transporte traduce cada variante con un switch exhaustivo.
type ErrorKind int

const (
	// KindValidation entrada rechazada por el validador (400).
	KindValidation ErrorKind = iota + 1
	// KindFieldConstraint violación de unicidad asociada a un campo (400).
	KindFieldConstraint
	// KindUnrecognizedConstraint violación de unicidad con identificador desconocido (400 opaco).
	KindUnrecognizedConstraint
	// KindNotFound recurso inexistente (404).
	KindNotFound
	// KindUnauthorized credenciales inválidas (401).
	KindUnauthorized
	// KindStorage cualquier otro fallo de almacenamiento (500 opaco).
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindFieldConstraint:
		return "field_constraint"
	case KindUnrecognizedConstraint:
		return "unrecognized_constraint"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindStorage:
		return "storage"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FieldErrors mensajes legibles indexados por nombre lógico de campo.
type FieldErrors map[string]string

// Error es la variante etiquetada que devuelven repositorios y casos de uso.
// Message es seguro para el cliente; Err conserva el detalle interno.
type Error struct {
	Kind    ErrorKind
	Fields  FieldErrors
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("account is inactive")
)

// NewValidationError error de validación con mensajes por campo.
func NewValidationError(fields FieldErrors) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

// NewValidationMessage error de validación global (sin campo).
func NewValidationMessage(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewFieldConstraintError violación de unicidad ya traducida a campos.
func NewFieldConstraintError(fields FieldErrors, cause error) *Error {
	return &Error{Kind: KindFieldConstraint, Fields: fields, Err: cause}
}

// NewUnrecognizedConstraintError violación de unicidad que no se pudo interpretar.
func NewUnrecognizedConstraintError(cause error) *Error {
	return &Error{Kind: KindUnrecognizedConstraint, Message: "Unexpected error", Err: cause}
}

// NewNotFoundError recurso inexistente; resource se usa en el mensaje ("user not found").
func NewNotFoundError(resource string, cause error) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found", Err: cause}
}

// NewUnauthorizedError credenciales rechazadas.
func NewUnauthorizedError(cause error) *Error {
	return &Error{Kind: KindUnauthorized, Message: cause.Error(), Err: cause}
}

// NewStorageError fallo opaco de almacenamiento.
func NewStorageError(cause error) *Error {
	return &Error{Kind: KindStorage, Message: "something went wrong", Err: cause}
}

// KindOf devuelve la clase de err; errores ajenos al dominio cuentan como KindStorage.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStorage
}

// IsNotFound atajo para KindOf(err) == KindNotFound.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
