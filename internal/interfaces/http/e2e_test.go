package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/infrastructure/postgres"
	"github.com/jhoicas/users-api/internal/infrastructure/postgres/query/querytest"
)

// Pruebas de la pila completa: HTTP → casos de uso → UserRepo → query.Executor,
// con un Querier en memoria en lugar de PostgreSQL.

const selectUsers = "SELECT id, email, image, username, first_name, last_name, password, is_active, create_at, update_at, last_login FROM users"

var createdAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func dbRow(id, email string) []any {
	return []any{id, email, nil, "ann" + id[len(id)-2:], "Ann", nil, "$2a$hash", true, createdAt, nil, nil}
}

func newSQLApp(db *querytest.Querier) (*fiber.App, *querytest.Conns) {
	conns := &querytest.Conns{DB: db}
	repo := postgres.NewUserRepository(conns, zerolog.Nop())
	return buildApp(repo, nil, zerolog.Nop()), conns
}

func TestE2E_ListaPaginadaConFiltros(t *testing.T) {
	const (
		id3 = "018f0000-0000-7000-8000-000000000003"
		id2 = "018f0000-0000-7000-8000-000000000002"
		id1 = "018f0000-0000-7000-8000-000000000001"
	)
	db := &querytest.Querier{Results: []*querytest.Rows{
		querytest.NewRows(dbRow(id3, "bob3@x.io"), dbRow(id2, "bob2@x.io"), dbRow(id1, "bob1@x.io")),
		querytest.NewRows(dbRow(id1, "bob1@x.io")),
	}}
	app, conns := newSQLApp(db)

	resp, raw := do(t, app, http.MethodGet, "/api/users/list?email=bob&is_active=true&limit=2", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, selectUsers+" WHERE email ILIKE $1 AND is_active = $2 ORDER BY id DESC LIMIT 3", db.Last().SQL)
	assert.Equal(t, []any{"%bob%", true}, db.Last().Args)
	first := decode[listBody](t, raw)
	require.Len(t, first.Data, 2)
	assert.Equal(t, id3, first.Data[0].ID)
	assert.Equal(t, id2, first.Data[1].ID)
	assert.True(t, first.Pagination.HasNext)
	require.NotNil(t, first.Pagination.Next)
	assert.Equal(t, id2, *first.Pagination.Next)

	resp, raw = do(t, app, http.MethodGet, "/api/users/list?email=bob&is_active=true&limit=2&next="+id2, nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, selectUsers+" WHERE email ILIKE $1 AND is_active = $2 AND id < $3 ORDER BY id DESC LIMIT 3", db.Last().SQL)
	assert.Equal(t, []any{"%bob%", true, id2}, db.Last().Args)
	second := decode[listBody](t, raw)
	require.Len(t, second.Data, 1)
	assert.False(t, second.Pagination.HasNext)
	assert.Nil(t, second.Pagination.Next)

	assert.Equal(t, conns.Acquired, conns.Released)
}

func TestE2E_ViolacionDeUnicidad(t *testing.T) {
	db := &querytest.Querier{QueryErr: &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_email_key",
		TableName:      "users",
	}}
	app, _ := newSQLApp(db)

	resp, raw := do(t, app, http.MethodPatch, "/api/users/018f0000-0000-7000-8000-000000000001/change", map[string]any{
		"email": "taken@example.com",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"errors":{"email":"email already exists"}}`, string(raw))
}

func TestE2E_FalloDeAlmacenamiento(t *testing.T) {
	db := &querytest.Querier{QueryErr: &pgconn.PgError{Code: "42P01", Message: `relation "users" does not exist`}}
	app, _ := newSQLApp(db)

	resp, raw := do(t, app, http.MethodGet, "/api/users/list", nil)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"something went wrong"}`, string(raw))
	assert.NotContains(t, string(raw), "relation")
}

func TestE2E_DeleteSinFilas(t *testing.T) {
	db := &querytest.Querier{Tag: pgconn.NewCommandTag("DELETE 0")}
	app, _ := newSQLApp(db)

	resp, raw := do(t, app, http.MethodDelete, "/api/users/018f0000-0000-7000-8000-000000000001/delete", nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"user not found"}`, string(raw))
}

func TestE2E_Registro(t *testing.T) {
	const id = "018f0000-0000-7000-8000-000000000007"
	db := &querytest.Querier{Results: []*querytest.Rows{querytest.NewRows(dbRow(id, "ann@example.com"))}}
	app, _ := newSQLApp(db)

	resp, raw := do(t, app, http.MethodPost, "/api/users/auth/register", registerBody("ann@example.com"))

	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	assert.Contains(t, db.Last().SQL, "INSERT INTO users")
	got := decode[dto.UserResponse](t, raw)
	assert.Equal(t, id, got.ID)
}
