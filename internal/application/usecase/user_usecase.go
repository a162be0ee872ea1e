package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
// cache es opcional: sin caché se lee siempre de la base.
type UserUseCase struct {
	repo   repository.UserRepository
	cache  repository.UserCache
	bounds domain.PageBounds
	log    zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, cache repository.UserCache, bounds domain.PageBounds, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, cache: cache, bounds: bounds, log: log}
}

// List lista usuarios filtrados, una página por llamada.
// La entrada ya viene validada en forma; aquí se aplican los límites de página.
func (uc *UserUseCase) List(ctx context.Context, q dto.ListUsersQuery) (*dto.ListResponse[dto.UserResponse], error) {
	page, err := domain.NewPageRequest(q.Next, q.Limit, uc.bounds)
	if err != nil {
		return nil, err
	}
	filter := entity.UserFilter{
		Email:     q.Email,
		IsActive:  q.IsActive,
		FirstName: q.FirstName,
		LastName:  q.LastName,
	}
	if q.CreateAt != nil {
		t, err := time.Parse(time.RFC3339, *q.CreateAt)
		if err != nil {
			return nil, domain.NewValidationError(domain.FieldErrors{"create_at": "invalid date value"})
		}
		filter.CreateAt = &t
	}

	result, err := uc.repo.List(ctx, filter, page, domain.SortDirection(q.Order))
	if err != nil {
		return nil, err
	}

	out := &dto.ListResponse[dto.UserResponse]{
		Data: make([]dto.UserResponse, 0, len(result.Items)),
		Pagination: dto.Pagination{
			HasNext: result.HasNext,
			Limit:   result.Limit,
		},
	}
	for _, u := range result.Items {
		out.Data = append(out.Data, dto.NewUserResponse(u))
	}
	if result.HasNext {
		next := result.NextCursor
		out.Pagination.Next = &next
	}
	return out, nil
}

// GetByID obtiene un usuario por ID, consultando primero la caché.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	if uc.cache != nil {
		u, ok, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.log.Warn().Err(err).Str("user_id", id).Msg("caché de usuarios no disponible")
		}
		if ok {
			resp := dto.NewUserResponse(u)
			return &resp, nil
		}
	}

	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, u); err != nil {
			uc.log.Warn().Err(err).Str("user_id", id).Msg("no se pudo guardar el usuario en caché")
		}
	}
	resp := dto.NewUserResponse(u)
	return &resp, nil
}

// Update aplica cambios parciales de perfil. Invalida la caché antes y después
// de escribir; una entrada repoblada durante la escritura no sobrevive.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	uc.invalidate(ctx, id)
	u, err := uc.repo.Update(ctx, id, entity.UserChanges{
		Email:     in.Email,
		Image:     in.Image,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  in.IsActive,
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, id)
	resp := dto.NewUserResponse(u)
	return &resp, nil
}

// Delete elimina un usuario; invalida la caché igual que Update.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	uc.invalidate(ctx, id)
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *UserUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("user_id", id).Msg("no se pudo invalidar la caché")
	}
}
