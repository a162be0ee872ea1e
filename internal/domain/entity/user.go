package entity

import "time"

// User representa un usuario del sistema.
// ID es un UUIDv7 en texto: único y estrictamente creciente, sirve de clave de paginación.
type User struct {
	ID           string
	Email        string
	Image        *string
	Username     string
	FirstName    *string
	LastName     *string
	PasswordHash string // bcrypt; nunca se expone fuera del dominio
	IsActive     bool
	CreateAt     time.Time
	UpdateAt     *time.Time
	LastLogin    *time.Time
}

// UserFilter filtros opcionales para listar usuarios. Campos nil no filtran.
type UserFilter struct {
	Email     *string
	IsActive  *bool
	FirstName *string
	LastName  *string
	CreateAt  *time.Time // usuarios creados desde esta fecha
}

// UserChanges cambios parciales de perfil. Campos nil no se modifican.
type UserChanges struct {
	Email     *string
	Image     *string
	FirstName *string
	LastName  *string
	IsActive  *bool
}

// Empty indica si no hay ningún cambio que aplicar.
func (c UserChanges) Empty() bool {
	return c.Email == nil && c.Image == nil && c.FirstName == nil && c.LastName == nil && c.IsActive == nil
}
