package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Description  Filtros opcionales combinados con AND. Paginación por cursor: next es el id del último usuario de la página anterior.
// @Tags         users
// @Produce      json
// @Param        email       query  string  false  "contiene (sin distinguir mayúsculas)"
// @Param        is_active   query  bool    false  "activo"
// @Param        first_name  query  string  false  "contiene"
// @Param        last_name   query  string  false  "contiene"
// @Param        create_at   query  string  false  "creados desde (RFC 3339)"
// @Param        next        query  string  false  "cursor"
// @Param        limit       query  int     false  "tamaño de página (1-25)"
// @Param        order       query  string  false  "asc | desc"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/list [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.ListUsersQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Produce      json
// @Param        user_id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{user_id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// Update godoc
// @Summary      Actualizar perfil
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user_id  path  string                 true  "ID del usuario"
// @Param        body     body  dto.UpdateUserRequest  true  "campos a cambiar"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{user_id}/change [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	user, err := h.uc.Update(c.UserContext(), c.Params("user_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Param        user_id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{user_id}/delete [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("user_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
