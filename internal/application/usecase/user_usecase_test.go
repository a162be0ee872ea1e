package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/application/usecase"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository/repotest"
)

func seed(n int) []*entity.User {
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

func newUseCase(repo *repotest.Users, cache *repotest.Cache) *usecase.UserUseCase {
	if cache == nil {
		return usecase.NewUserUseCase(repo, nil, domain.DefaultPageBounds, zerolog.Nop())
	}
	return usecase.NewUserUseCase(repo, cache, domain.DefaultPageBounds, zerolog.Nop())
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

// ─────────────────────────────────────────────────────────────────────────────
// List
// ─────────────────────────────────────────────────────────────────────────────

func TestList_DefaultLimitAndOverfetch(t *testing.T) {
	uc := newUseCase(repotest.NewUsers(seed(11)...), nil)

	out, err := uc.List(context.Background(), dto.ListUsersQuery{})

	require.NoError(t, err)
	assert.Len(t, out.Data, 10)
	assert.True(t, out.Pagination.HasNext)
	require.NotNil(t, out.Pagination.Next)
	assert.Equal(t, out.Data[9].ID, *out.Pagination.Next)
	assert.Equal(t, 10, out.Pagination.Limit)
}

func TestList_ExactlyLimitRows(t *testing.T) {
	uc := newUseCase(repotest.NewUsers(seed(10)...), nil)

	out, err := uc.List(context.Background(), dto.ListUsersQuery{Limit: intPtr(10)})

	require.NoError(t, err)
	assert.Len(t, out.Data, 10)
	assert.False(t, out.Pagination.HasNext)
	assert.Nil(t, out.Pagination.Next)
}

func TestList_PagesAreDisjointAndComplete(t *testing.T) {
	users := seed(7)
	uc := newUseCase(repotest.NewUsers(users...), nil)

	var ids []string
	q := dto.ListUsersQuery{Limit: intPtr(3)}
	for {
		out, err := uc.List(context.Background(), q)
		require.NoError(t, err)
		for _, u := range out.Data {
			ids = append(ids, u.ID)
		}
		if !out.Pagination.HasNext {
			break
		}
		q.Next = *out.Pagination.Next
	}

	require.Len(t, ids, 7)
	for i := range ids {
		assert.Equal(t, users[6-i].ID, ids[i])
	}
}

func TestList_LimitOutOfRange(t *testing.T) {
	uc := newUseCase(repotest.NewUsers(), nil)

	for _, l := range []int{0, 26} {
		_, err := uc.List(context.Background(), dto.ListUsersQuery{Limit: intPtr(l)})
		var de *domain.Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.KindValidation, de.Kind)
		assert.Equal(t, domain.FieldErrors{"limit": "invalid range value"}, de.Fields)
	}
}

func TestList_FiltersAndCreateAt(t *testing.T) {
	uc := newUseCase(repotest.NewUsers(seed(6)...), nil)
	active := true
	since := "2024-01-01T02:00:00Z"

	out, err := uc.List(context.Background(), dto.ListUsersQuery{IsActive: &active, CreateAt: &since, Order: "asc"})

	require.NoError(t, err)
	require.Len(t, out.Data, 2)
	assert.Equal(t, "user03", out.Data[0].Username)
	assert.Equal(t, "user05", out.Data[1].Username)
}

func TestList_InvalidCreateAt(t *testing.T) {
	uc := newUseCase(repotest.NewUsers(), nil)

	_, err := uc.List(context.Background(), dto.ListUsersQuery{CreateAt: strPtr("ayer")})

	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID y caché
// ─────────────────────────────────────────────────────────────────────────────

func TestGetByID_ReadThroughCache(t *testing.T) {
	users := seed(1)
	repo := repotest.NewUsers(users...)
	cache := repotest.NewCache()
	uc := newUseCase(repo, cache)

	first, err := uc.GetByID(context.Background(), users[0].ID)
	require.NoError(t, err)
	second, err := uc.GetByID(context.Background(), users[0].ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.Reads)
	assert.Contains(t, cache.Items, users[0].ID)
}

func TestGetByID_CacheFailureFallsBackToRepo(t *testing.T) {
	users := seed(1)
	cache := repotest.NewCache()
	cache.Err = errors.New("redis caído")
	uc := newUseCase(repotest.NewUsers(users...), cache)

	got, err := uc.GetByID(context.Background(), users[0].ID)

	require.NoError(t, err)
	assert.Equal(t, users[0].Email, got.Email)
}

func TestGetByID_NotFound(t *testing.T) {
	uc := newUseCase(repotest.NewUsers(), repotest.NewCache())

	_, err := uc.GetByID(context.Background(), "missing")

	assert.True(t, domain.IsNotFound(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdate_InvalidatesCache(t *testing.T) {
	users := seed(2)
	cache := repotest.NewCache()
	uc := newUseCase(repotest.NewUsers(users...), cache)
	_, err := uc.GetByID(context.Background(), users[0].ID)
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), users[0].ID, dto.UpdateUserRequest{LastName: strPtr("Smith")})

	require.NoError(t, err)
	assert.Equal(t, "Smith", *out.LastName)
	assert.NotNil(t, out.UpdateAt)
	assert.NotContains(t, cache.Items, users[0].ID)
}

func TestUpdate_EntryRepopulatedDuringWriteIsDropped(t *testing.T) {
	users := seed(1)
	repo := repotest.NewUsers(users...)
	cache := repotest.NewCache()
	uc := newUseCase(repo, cache)
	// lectura concurrente que guarda la fila vieja mientras se escribe
	repo.OnWrite = func() { _ = cache.Set(context.Background(), users[0]) }

	_, err := uc.Update(context.Background(), users[0].ID, dto.UpdateUserRequest{LastName: strPtr("Smith")})

	require.NoError(t, err)
	assert.NotContains(t, cache.Items, users[0].ID)
}

func TestUpdate_InvalidatesBeforeWrite(t *testing.T) {
	users := seed(1)
	repo := repotest.NewUsers(users...)
	cache := repotest.NewCache()
	require.NoError(t, cache.Set(context.Background(), users[0]))
	uc := newUseCase(repo, cache)
	var cachedDuringWrite bool
	repo.OnWrite = func() { _, cachedDuringWrite = cache.Items[users[0].ID] }

	_, err := uc.Update(context.Background(), users[0].ID, dto.UpdateUserRequest{LastName: strPtr("Smith")})

	require.NoError(t, err)
	assert.False(t, cachedDuringWrite)
}

func TestDelete_EntryRepopulatedDuringWriteIsDropped(t *testing.T) {
	users := seed(1)
	repo := repotest.NewUsers(users...)
	cache := repotest.NewCache()
	uc := newUseCase(repo, cache)
	repo.OnWrite = func() { _ = cache.Set(context.Background(), users[0]) }

	require.NoError(t, uc.Delete(context.Background(), users[0].ID))
	assert.Empty(t, cache.Items)
}

func TestUpdate_DuplicateEmail(t *testing.T) {
	users := seed(2)
	uc := newUseCase(repotest.NewUsers(users...), nil)

	_, err := uc.Update(context.Background(), users[0].ID, dto.UpdateUserRequest{Email: strPtr(users[1].Email)})

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindFieldConstraint, de.Kind)
	assert.Equal(t, "email already exists", de.Fields["email"])
}

func TestDelete(t *testing.T) {
	users := seed(1)
	cache := repotest.NewCache()
	require.NoError(t, cache.Set(context.Background(), users[0]))
	uc := newUseCase(repotest.NewUsers(users...), cache)

	require.NoError(t, uc.Delete(context.Background(), users[0].ID))
	assert.Empty(t, cache.Items)
	assert.True(t, domain.IsNotFound(uc.Delete(context.Background(), users[0].ID)))
}
