package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/pkg/validator"
)

const (
	msgInvalidJSON  = "Invalid json format"
	msgInvalidQuery = "Invalid query params format"
)

// bindJSON decodifica el cuerpo JSON en out y lo valida.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationMessage(msgInvalidJSON)
	}
	return validate(out)
}

// bindQuery decodifica los parámetros de query en out y los valida.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.NewValidationMessage(msgInvalidQuery)
	}
	return validate(out)
}

func validate(out any) error {
	if errs := validator.Struct(out); errs != nil {
		return domain.NewValidationError(domain.FieldErrors(errs))
	}
	return nil
}
