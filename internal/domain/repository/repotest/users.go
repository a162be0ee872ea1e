// Package repotest implementaciones en memoria de los puertos de repositorio para pruebas.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*Users)(nil)
	_ repository.UserCache      = (*Cache)(nil)
)

// Users repositorio en memoria con la misma semántica de filtros y cursor que PostgreSQL.
// Err, si no es nil, se devuelve en todas las operaciones.
// OnWrite, si no es nil, se ejecuta dentro de Update y Delete antes de aplicar el cambio.
type Users struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	Err     error
	Reads   int
	OnWrite func()
}

func NewUsers(users ...*entity.User) *Users {
	r := &Users{byID: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		r.byID[u.ID] = &cp
	}
	return r
}

func notFound() error { return domain.NewNotFoundError("user", nil) }

func (r *Users) List(_ context.Context, f entity.UserFilter, page domain.PageRequest, dir domain.SortDirection) (domain.Page[*entity.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.Page[*entity.User]{}, r.Err
	}
	asc := dir == domain.SortDirectionAsc
	var rows []*entity.User
	for _, u := range r.byID {
		if !matches(u, f) {
			continue
		}
		if page.Cursor != "" && ((asc && u.ID <= page.Cursor) || (!asc && u.ID >= page.Cursor)) {
			continue
		}
		cp := *u
		rows = append(rows, &cp)
	}
	sort.Slice(rows, func(i, j int) bool {
		if asc {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].ID > rows[j].ID
	})

	out := domain.Page[*entity.User]{Items: rows, Limit: page.Limit}
	if out.Items == nil {
		out.Items = []*entity.User{}
	}
	if len(rows) > page.Limit {
		out.Items = rows[:page.Limit]
		out.HasNext = true
		out.NextCursor = out.Items[page.Limit-1].ID
	}
	return out, nil
}

func contains(have *string, want *string) bool {
	if want == nil {
		return true
	}
	return have != nil && strings.Contains(strings.ToLower(*have), strings.ToLower(*want))
}

func matches(u *entity.User, f entity.UserFilter) bool {
	email := u.Email
	switch {
	case !contains(&email, f.Email):
		return false
	case f.IsActive != nil && u.IsActive != *f.IsActive:
		return false
	case !contains(u.FirstName, f.FirstName):
		return false
	case !contains(u.LastName, f.LastName):
		return false
	case f.CreateAt != nil && u.CreateAt.Before(*f.CreateAt):
		return false
	}
	return true
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, notFound()
	}
	cp := *u
	return &cp, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound()
}

// unique replica los índices users_email_key y users_username_key.
func (r *Users) unique(u *entity.User) error {
	for _, other := range r.byID {
		if other.ID == u.ID {
			continue
		}
		if other.Email == u.Email {
			return domain.NewFieldConstraintError(domain.FieldErrors{"email": "email already exists"}, nil)
		}
		if other.Username == u.Username {
			return domain.NewFieldConstraintError(domain.FieldErrors{"username": "username already exists"}, nil)
		}
	}
	return nil
}

func (r *Users) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if err := r.unique(u); err != nil {
		return nil, err
	}
	cp := *u
	r.byID[u.ID] = &cp
	out := cp
	return &out, nil
}

func (r *Users) Update(_ context.Context, id string, c entity.UserChanges) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	cur, ok := r.byID[id]
	if !ok {
		return nil, notFound()
	}
	if r.OnWrite != nil {
		r.OnWrite()
	}
	next := *cur
	if c.Email != nil {
		next.Email = *c.Email
	}
	if c.Image != nil {
		next.Image = c.Image
	}
	if c.FirstName != nil {
		next.FirstName = c.FirstName
	}
	if c.LastName != nil {
		next.LastName = c.LastName
	}
	if c.IsActive != nil {
		next.IsActive = *c.IsActive
	}
	if !c.Empty() {
		now := time.Now().UTC()
		next.UpdateAt = &now
	}
	if err := r.unique(&next); err != nil {
		return nil, err
	}
	r.byID[id] = &next
	out := next
	return &out, nil
}

func (r *Users) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return notFound()
	}
	u.LastLogin = &at
	return nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byID[id]; !ok {
		return notFound()
	}
	if r.OnWrite != nil {
		r.OnWrite()
	}
	delete(r.byID, id)
	return nil
}

// Cache caché en memoria. Err simula un backend caído.
type Cache struct {
	mu    sync.Mutex
	Items map[string]entity.User
	Err   error
}

func NewCache() *Cache { return &Cache{Items: map[string]entity.User{}} }

func (c *Cache) Get(_ context.Context, id string) (*entity.User, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, false, c.Err
	}
	u, ok := c.Items[id]
	if !ok {
		return nil, false, nil
	}
	return &u, true, nil
}

func (c *Cache) Set(_ context.Context, u *entity.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Items[u.ID] = *u
	return nil
}

func (c *Cache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	delete(c.Items, id)
	return nil
}
