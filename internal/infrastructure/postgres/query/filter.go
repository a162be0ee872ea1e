// Package query compila filtros dispersos a predicados SQL parametrizados,
// añade paginación por cursor (keyset) y ejecuta las consultas resultantes
// clasificando los errores de PostgreSQL en variantes de domain.Error.
//
// Los nombres de columna, operadores y expresiones de orden provienen solo de
// tablas declaradas en código (Field, Ordering). Los valores viajan siempre
// como parámetros posicionales ($1, $2, ...), nunca interpolados.
package query

import (
	"strconv"
	"strings"
	"time"
)

// Operator operador de comparación de un predicado.
type Operator string

const (
	ILike Operator = "ILIKE"
	Like  Operator = "LIKE"
	Eq    Operator = "="
	Gte   Operator = ">="
	Lte   Operator = "<="
)

// matchesSubstring indica si el valor debe envolverse en comodines.
func (o Operator) matchesSubstring() bool {
	return o == ILike || o == Like
}

// Separator conector lógico entre predicados.
type Separator string

const (
	And Separator = "AND"
	Or  Separator = "OR"
)

// whereKeyword introduce el primer predicado.
const whereKeyword = "WHERE"

// Field fila de la tabla de esquema: nombre lógico, columna física y operador.
// Operator vacío usa el operador recibido por Compile.
type Field struct {
	Name     string
	Column   string
	Operator Operator
}

// Slot atributo opcional de un filtro. Solo los slots con Set emiten predicado.
type Slot struct {
	Field Field
	Value any
	Set   bool
}

// FilterSpec lista ordenada de slots; el orden fija la numeración de placeholders.
type FilterSpec []Slot

// Text slot de texto; nil queda sin asignar.
func Text(f Field, v *string) Slot {
	if v == nil {
		return Slot{Field: f}
	}
	return Slot{Field: f, Value: *v, Set: true}
}

// Bool slot booleano; nil queda sin asignar.
func Bool(f Field, v *bool) Slot {
	if v == nil {
		return Slot{Field: f}
	}
	return Slot{Field: f, Value: *v, Set: true}
}

// Time slot de fecha; nil queda sin asignar.
func Time(f Field, v *time.Time) Slot {
	if v == nil {
		return Slot{Field: f}
	}
	return Slot{Field: f, Value: *v, Set: true}
}

// Fragment texto SQL más sus argumentos posicionales.
// El N-ésimo placeholder del texto corresponde a Args[N-1].
type Fragment struct {
	SQL  string
	Args []any
}

// Placeholder devuelve "$n".
func Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// Compile recorre los slots en orden de declaración y emite
// "<lead> <columna> <operador> $<n> " por cada slot asignado, donde lead es
// WHERE para el primero y sep para los siguientes. Sin slots asignados
// devuelve un fragmento vacío. Nunca falla y no valida semántica.
func Compile(spec FilterSpec, op Operator, sep Separator) Fragment {
	var (
		sb      strings.Builder
		args    []any
		counter = 1
	)
	for _, slot := range spec {
		if !slot.Set {
			continue
		}
		effective := slot.Field.Operator
		if effective == "" {
			effective = op
		}
		lead := string(sep)
		if counter == 1 {
			lead = whereKeyword
		}
		sb.WriteString(lead)
		sb.WriteByte(' ')
		sb.WriteString(slot.Field.Column)
		sb.WriteByte(' ')
		sb.WriteString(string(effective))
		sb.WriteByte(' ')
		sb.WriteString(Placeholder(counter))
		sb.WriteByte(' ')
		counter++
		args = append(args, bindValue(slot.Value, effective))
	}
	return Fragment{SQL: sb.String(), Args: args}
}

// Assign compila los slots asignados como lista "columna = $n, ..." para un
// UPDATE, numerando desde 1. Sirve la misma contabilidad posicional que Compile.
func Assign(spec FilterSpec) Fragment {
	var (
		parts []string
		args  []any
	)
	for _, slot := range spec {
		if !slot.Set {
			continue
		}
		args = append(args, slot.Value)
		parts = append(parts, slot.Field.Column+" = "+Placeholder(len(args)))
	}
	return Fragment{SQL: strings.Join(parts, ", "), Args: args}
}

// likeEscaper antepone \ (ESCAPE por defecto de LIKE en PostgreSQL) a % _ y \:
// el valor filtra como subcadena literal.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func bindValue(v any, op Operator) any {
	s, ok := v.(string)
	if ok && op.matchesSubstring() {
		return "%" + likeEscaper.Replace(s) + "%"
	}
	return v
}
