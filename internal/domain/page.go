package domain

// SortDirection dirección de ordenamiento para listados.
type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// PageBounds límites configurados para el tamaño de página.
type PageBounds struct {
	Min     int
	Max     int
	Default int
}

// DefaultPageBounds 1–25 con 10 por defecto.
var DefaultPageBounds = PageBounds{Min: 1, Max: 25, Default: 10}

// PageRequest paginación por cursor (keyset). Cursor vacío = primera página.
type PageRequest struct {
	Cursor string
	Limit  int
}

// NewPageRequest aplica el límite por defecto cuando falta y rechaza valores fuera de rango.
func NewPageRequest(cursor string, limit *int, b PageBounds) (PageRequest, error) {
	if limit == nil {
		return PageRequest{Cursor: cursor, Limit: b.Default}, nil
	}
	if *limit < b.Min || *limit > b.Max {
		return PageRequest{}, NewValidationError(FieldErrors{"limit": "invalid range value"})
	}
	return PageRequest{Cursor: cursor, Limit: *limit}, nil
}

// Page resultado de un listado paginado.
// NextCursor es el id del último elemento devuelto cuando HasNext es true.
type Page[T any] struct {
	Items      []T
	HasNext    bool
	NextCursor string
	Limit      int
}
