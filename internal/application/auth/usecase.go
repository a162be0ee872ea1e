package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/pkg/jwt"
)

// usernameSuffixLen caracteres finales del id que se añaden al username.
const usernameSuffixLen = 5

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	users      repository.UserRepository
	jwtCfg     JWTConfig
	bcryptCost int
	log        zerolog.Logger

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// NewAuthUseCase construye el caso de uso de auth. bcryptCost 0 usa bcrypt.DefaultCost.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig, bcryptCost int, log zerolog.Logger) *AuthUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{
		users:      users,
		jwtCfg:     jwtCfg,
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
		newID:      uuid.NewV7,
	}
}

// Register crea un usuario con contraseña. Sin first_name se usa el prefijo del email;
// el username es el slug de ese nombre más el final del id.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	id, err := uc.newID()
	if err != nil {
		return nil, domain.NewStorageError(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}

	email := strings.TrimSpace(in.Email)
	prefix, _, _ := strings.Cut(email, "@")
	firstName := in.FirstName
	if firstName == nil || strings.TrimSpace(*firstName) == "" {
		firstName = &prefix
	}

	user := &entity.User{
		ID:           id.String(),
		Email:        email,
		Username:     Username(*firstName, prefix, id.String()),
		FirstName:    firstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
		CreateAt:     uc.now().UTC(),
	}
	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(created)
	return &resp, nil
}

// Username slug de name (o de fallback si name no produce slug) seguido del final de id.
func Username(name, fallback, id string) string {
	base := slug.Make(name)
	if base == "" {
		base = slug.Make(fallback)
	}
	if base == "" {
		base = "user"
	}
	suffix := id
	if len(id) > usernameSuffixLen {
		suffix = id[len(id)-usernameSuffixLen:]
	}
	return base + suffix
}

// Login verifica email/password, registra el acceso y retorna token + usuario.
// Email inexistente y contraseña errónea son indistinguibles para el cliente.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError(domain.ErrInvalidCredentials)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("hash de contraseña ilegible")
		}
		return nil, domain.NewUnauthorizedError(domain.ErrInvalidCredentials)
	}
	if !user.IsActive {
		return nil, domain.NewUnauthorizedError(domain.ErrInactiveUser)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, domain.NewStorageError(err)
	}

	now := uc.now().UTC()
	if err := uc.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar last_login")
	} else {
		user.LastLogin = &now
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}
