package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/domain"
)

const (
	msgInternal = "something went wrong"
	msgTimeout  = "request timeout"
)

// writeError traduce un error de dominio a estado HTTP y cuerpo dto.ErrorResponse.
// Los detalles internos (Err) nunca llegan al cliente.
func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{Error: msgTimeout})
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgInternal})
	}

	switch de.Kind {
	case domain.KindValidation:
		if len(de.Fields) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Errors: de.Fields})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: de.Message})
	case domain.KindFieldConstraint:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Errors: de.Fields})
	case domain.KindUnrecognizedConstraint:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: de.Message})
	case domain.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: de.Message})
	case domain.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: de.Message})
	case domain.KindStorage:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgInternal})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgInternal})
	}
}

// ErrorHandler manejador de errores de la app: errores de fiber (404 de ruta,
// 413 por tamaño de cuerpo...) con su propio estado, el resto vía writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message})
	}
	return writeError(c, err)
}
