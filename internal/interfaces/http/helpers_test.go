package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/users-api/internal/application/auth"
	"github.com/jhoicas/users-api/internal/application/usecase"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/internal/domain/repository/repotest"
	apphttp "github.com/jhoicas/users-api/internal/interfaces/http"
)

// buildApp app completa (NewApp + Router) sobre el repositorio indicado.
func buildApp(repo repository.UserRepository, cache repository.UserCache, log zerolog.Logger) *fiber.App {
	app := apphttp.NewApp(apphttp.AppConfig{Name: "users-api-test", Log: log})
	apphttp.Router(app, apphttp.RouterDeps{
		UserUC:         usecase.NewUserUseCase(repo, cache, domain.DefaultPageBounds, log),
		AuthUC:         auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, bcrypt.MinCost, log),
		JWTSecret:      testJWTSecret,
		RequestTimeout: 5 * time.Second,
		ServiceName:    "users-api-test",
	})
	return app
}

func seedUsers(n int) []*entity.User {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*entity.User, n)
	for i := range out {
		name := fmt.Sprintf("user%02d", i+1)
		out[i] = &entity.User{
			ID:        fmt.Sprintf("018f0000-0000-7000-8000-0000000000%02d", i+1),
			Email:     name + "@example.com",
			Username:  name,
			FirstName: &name,
			IsActive:  i%2 == 0,
			CreateAt:  base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newTestApp(users ...*entity.User) (*fiber.App, *repotest.Users) {
	repo := repotest.NewUsers(users...)
	return buildApp(repo, nil, zerolog.Nop()), repo
}

// do lanza la petición; body se serializa a JSON salvo que ya sea string.
func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if r != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}
