package dto

// Pagination metadatos de un listado por cursor. Next es null en la última página.
type Pagination struct {
	HasNext bool    `json:"has_next"`
	Next    *string `json:"next"`
	Limit   int     `json:"limit"`
}

// ListResponse envoltorio de listados paginados.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ErrorResponse cuerpo de error HTTP: errores por campo o un mensaje global.
type ErrorResponse struct {
	Errors map[string]string `json:"errors,omitempty"`
	Error  string            `json:"error,omitempty"`
}
