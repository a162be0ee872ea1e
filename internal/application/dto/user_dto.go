package dto

import (
	"time"

	"github.com/jhoicas/users-api/internal/domain/entity"
)

// ListUsersQuery filtros y paginación de GET /list. CreateAt en RFC 3339.
type ListUsersQuery struct {
	Email     *string `query:"email" validate:"omitempty,min=3,max=100"`
	IsActive  *bool   `query:"is_active"`
	FirstName *string `query:"first_name" validate:"omitempty,min=3,max=50"`
	LastName  *string `query:"last_name" validate:"omitempty,min=3,max=50"`
	CreateAt  *string `query:"create_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Next      string  `query:"next" validate:"omitempty,uuid"`
	Limit     *int    `query:"limit"`
	Order     string  `query:"order" validate:"omitempty,oneof=asc desc"`
}

// RegisterRequest alta con email y contraseña; new_password confirma password.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,min=5,max=60,email,email_suffix"`
	Password    string  `json:"password" validate:"required,min=5,max=100,eqfield=NewPassword"`
	NewPassword string  `json:"new_password" validate:"required,min=5,max=100"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,max=50"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=5,max=60,email,email_suffix"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest cambios parciales de perfil; campos ausentes no se tocan.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,min=5,max=60,email,email_suffix"`
	Image     *string `json:"image" validate:"omitempty,url,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,min=3,max=50"`
	IsActive  *bool   `json:"is_active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Image     *string    `json:"image"`
	Username  string     `json:"username"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	IsActive  bool       `json:"is_active"`
	CreateAt  time.Time  `json:"create_at"`
	UpdateAt  *time.Time `json:"update_at"`
	LastLogin *time.Time `json:"last_login"`
}

// LoginResponse token JWT y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse proyecta la entidad a la salida pública.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Image:     u.Image,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreateAt:  u.CreateAt,
		UpdateAt:  u.UpdateAt,
		LastLogin: u.LastLogin,
	}
}
