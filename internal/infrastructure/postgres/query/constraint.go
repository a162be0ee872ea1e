package query

import (
	"regexp"
	"strings"

	"github.com/jhoicas/users-api/internal/domain"
)

// Convención de nombres de índices únicos: <tabla>_<campo>[$$$<campo>...]_key.
// Los campos van entre el primer y el último '_'.
const (
	constraintDelimiter = "_"
	fieldSeparator      = "$$$"
)

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// MapUniqueViolation traduce el nombre de una restricción única a un error por
// campo. El mensaje nombra todos los campos implicados pero se indexa solo
// bajo el primero. Devuelve false si el identificador no sigue la convención.
func MapUniqueViolation(constraint string) (domain.FieldErrors, bool) {
	fields, ok := constraintFields(constraint)
	if !ok {
		return nil, false
	}

	var msg string
	switch n := len(fields); n {
	case 1:
		msg = fields[0] + " already exists"
	case 2:
		msg = fields[0] + " with " + fields[1] + " already exists"
	default:
		msg = fields[0] + " with " + strings.Join(fields[1:n-1], ", ") + " and " + fields[n-1] + " already exists"
	}
	msg = strings.ReplaceAll(msg, "_", " ")

	return domain.FieldErrors{fields[0]: msg}, true
}

func constraintFields(constraint string) ([]string, bool) {
	first := strings.Index(constraint, constraintDelimiter)
	last := strings.LastIndex(constraint, constraintDelimiter)
	if first < 0 || last <= first+1 {
		return nil, false
	}
	fields := strings.Split(constraint[first+1:last], fieldSeparator)
	for _, f := range fields {
		if !fieldNamePattern.MatchString(f) {
			return nil, false
		}
	}
	return fields, true
}
