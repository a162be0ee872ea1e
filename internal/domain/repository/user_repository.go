package repository

import (
	"context"
	"time"

	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los errores son *domain.Error: KindNotFound, KindFieldConstraint,
// KindUnrecognizedConstraint o KindStorage.
type UserRepository interface {
	List(ctx context.Context, f entity.UserFilter, page domain.PageRequest, dir domain.SortDirection) (domain.Page[*entity.User], error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, id string, changes entity.UserChanges) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// UserCache caché de lectura para usuarios por ID.
// Get devuelve (nil, false, nil) en un miss.
type UserCache interface {
	Get(ctx context.Context, id string) (*entity.User, bool, error)
	Set(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
