package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/users-api/internal/application/auth"
	"github.com/jhoicas/users-api/internal/application/usecase"
)

// defaultBodyLimit tamaño máximo de cuerpo cuando no se configura otro.
const defaultBodyLimit = 100 * 1024

// AppConfig parámetros de la app fiber.
type AppConfig struct {
	Name      string
	BodyLimit int
	Log       zerolog.Logger
}

// NewApp crea la app fiber con manejador de errores, recover y log de peticiones.
func NewApp(cfg AppConfig) *fiber.App {
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = defaultBodyLimit
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(cfg.Log))
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC         *usecase.UserUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
	RequestTimeout time.Duration
	ServiceName    string
	// Health comprueba dependencias externas; nil responde siempre ok.
	Health func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	users := app.Group("/api/users", Identify(deps.JWTSecret))
	if deps.RequestTimeout > 0 {
		users.Use(Timeout(deps.RequestTimeout))
	}

	// Rutas fijas antes de /:user_id
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/list", userHandler.List)

	authHandler := NewAuthHandler(deps.AuthUC)
	users.Post("/auth/register", authHandler.Register)
	users.Post("/auth/password", authHandler.Login)

	users.Get("/:user_id", userHandler.GetByID)
	users.Patch("/:user_id/change", userHandler.Update)
	users.Delete("/:user_id/delete", userHandler.Delete)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status":  "unavailable",
					"service": deps.ServiceName,
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
