package query

import (
	"strconv"
	"strings"

	"github.com/jhoicas/users-api/internal/domain"
)

// keyColumn clave única y monotónica usada como cursor.
const keyColumn = "id"

// Ordering orden determinista del listado. Column debe ser keyColumn o una
// columna declarada en código; nunca proviene de la petición.
type Ordering struct {
	Column string
	Desc   bool
}

// DefaultOrdering id DESC: primero los más recientes.
var DefaultOrdering = Ordering{Column: keyColumn, Desc: true}

// OrderingFor traduce la dirección pedida a un Ordering sobre la clave.
func OrderingFor(dir domain.SortDirection) Ordering {
	if dir == domain.SortDirectionAsc {
		return Ordering{Column: keyColumn}
	}
	return DefaultOrdering
}

func (o Ordering) String() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}

// comparator operador del predicado de cursor según la dirección.
func (o Ordering) comparator() string {
	if o.Desc {
		return "<"
	}
	return ">"
}

// Paginate extiende f con el predicado de cursor (si lo hay), ORDER BY y
// LIMIT page.Limit+1. El placeholder del cursor continúa la numeración de f.
// page.Limit ya viene acotado por domain.NewPageRequest.
func Paginate(f Fragment, page domain.PageRequest, order Ordering, sep Separator) Fragment {
	if order.Column == "" {
		order = DefaultOrdering
	}
	var sb strings.Builder
	sb.WriteString(f.SQL)
	args := append([]any(nil), f.Args...)

	if page.Cursor != "" {
		// f puede traer predicados sin argumentos (p. ej. "WHERE deleted_at IS NULL")
		lead := string(sep)
		if strings.TrimSpace(f.SQL) == "" {
			lead = whereKeyword
		}
		args = append(args, page.Cursor)
		sb.WriteString(lead + " " + keyColumn + " " + order.comparator() + " " + Placeholder(len(args)) + " ")
	}

	sb.WriteString("ORDER BY " + order.String() + " ")
	sb.WriteString("LIMIT " + strconv.Itoa(page.Limit+1))
	return Fragment{SQL: sb.String(), Args: args}
}

// Truncate aplica la regla de sobre-lectura: si llegaron más filas que limit
// hay página siguiente, se recorta a limit y el cursor es el id de la última
// fila devuelta.
func Truncate[T any](rows []T, limit int, idOf func(T) string) domain.Page[T] {
	page := domain.Page[T]{Items: rows, Limit: limit}
	if page.Items == nil {
		page.Items = make([]T, 0)
	}
	if len(rows) > limit {
		page.Items = rows[:limit]
		page.HasNext = true
		if limit > 0 {
			page.NextCursor = idOf(page.Items[limit-1])
		}
	}
	return page
}
