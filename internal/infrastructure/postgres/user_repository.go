package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/internal/infrastructure/postgres/query"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, image, username, first_name, last_name, password, is_active, create_at, update_at, last_login`

// Tabla de esquema de users: nombre lógico, columna y operador de filtro.
var (
	userEmail     = query.Field{Name: "email", Column: "email", Operator: query.ILike}
	userIsActive  = query.Field{Name: "is_active", Column: "is_active", Operator: query.Eq}
	userFirstName = query.Field{Name: "first_name", Column: "first_name", Operator: query.ILike}
	userLastName  = query.Field{Name: "last_name", Column: "last_name", Operator: query.ILike}
	userCreateAt  = query.Field{Name: "create_at", Column: "create_at", Operator: query.Gte}
	userImage     = query.Field{Name: "image", Column: "image"}
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	ex *query.Executor
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(conns query.ConnSource, log zerolog.Logger) *UserRepo {
	return &UserRepo{ex: query.NewExecutor(conns, log, "user")}
}

// userFilterSpec el orden de los slots fija la numeración de placeholders.
func userFilterSpec(f entity.UserFilter) query.FilterSpec {
	return query.FilterSpec{
		query.Text(userEmail, nfc(f.Email)),
		query.Bool(userIsActive, f.IsActive),
		query.Text(userFirstName, nfc(f.FirstName)),
		query.Text(userLastName, nfc(f.LastName)),
		query.Time(userCreateAt, f.CreateAt),
	}
}

// List lista usuarios filtrados con paginación por cursor sobre id.
func (r *UserRepo) List(ctx context.Context, f entity.UserFilter, page domain.PageRequest, dir domain.SortDirection) (domain.Page[*entity.User], error) {
	return query.List(ctx, r.ex, query.ListQuery[*entity.User]{
		Projection: `SELECT ` + userColumns + ` FROM users`,
		Filter:     query.Compile(userFilterSpec(f), query.ILike, query.And),
		Separator:  query.And,
		Page:       page,
		Order:      query.OrderingFor(dir),
		Scan:       scanUser,
		ID:         func(u *entity.User) string { return u.ID },
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return query.One(ctx, r.ex, `SELECT `+userColumns+` FROM users WHERE id = $1`, []any{id}, scanUser)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return query.One(ctx, r.ex, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`,
		[]any{norm.NFC.String(email)}, scanUser)
}

// Create persiste un nuevo usuario y devuelve la fila almacenada.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	sql := `
		INSERT INTO users (id, email, image, username, first_name, last_name, password, is_active, create_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns
	return query.Write(ctx, r.ex, sql, []any{
		u.ID, norm.NFC.String(u.Email), u.Image, u.Username, nfc(u.FirstName), nfc(u.LastName),
		u.PasswordHash, u.IsActive, u.CreateAt,
	}, scanUser)
}

// Update aplica cambios parciales; sin cambios equivale a GetByID.
func (r *UserRepo) Update(ctx context.Context, id string, c entity.UserChanges) (*entity.User, error) {
	if c.Empty() {
		return r.GetByID(ctx, id)
	}
	set := query.Assign(query.FilterSpec{
		query.Text(userEmail, nfc(c.Email)),
		query.Text(userImage, c.Image),
		query.Text(userFirstName, nfc(c.FirstName)),
		query.Text(userLastName, nfc(c.LastName)),
		query.Bool(userIsActive, c.IsActive),
	})
	args := append(set.Args, id)
	sql := `UPDATE users SET ` + set.SQL + `, update_at = now() WHERE id = ` + query.Placeholder(len(args)) +
		` RETURNING ` + userColumns
	return query.Write(ctx, r.ex, sql, args, scanUser)
}

// TouchLastLogin registra el último inicio de sesión.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.ex.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.ex.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func scanUser(row pgx.CollectableRow) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Image, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.IsActive, &u.CreateAt, &u.UpdateAt, &u.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// nfc normaliza texto a NFC para que comparaciones y unicidad no dependan de la forma Unicode.
func nfc(s *string) *string {
	if s == nil {
		return nil
	}
	v := norm.NFC.String(*s)
	return &v
}
