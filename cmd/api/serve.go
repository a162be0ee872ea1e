package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/spf13/cobra"

	"github.com/jhoicas/users-api/internal/application/auth"
	"github.com/jhoicas/users-api/internal/application/usecase"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/internal/infrastructure/postgres"
	"github.com/jhoicas/users-api/internal/infrastructure/postgres/query"
	infraredis "github.com/jhoicas/users-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/users-api/internal/interfaces/http"
	"github.com/jhoicas/users-api/pkg/config"
	"github.com/jhoicas/users-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca el servidor HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return err
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(query.NewPoolConns(pool), log.Component("postgres"))

	// Caché opcional: sin REDIS_ADDR se lee siempre de la base.
	var userCache repository.UserCache
	if cfg.Redis.Enabled() {
		rc, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché desactivada")
		} else {
			defer rc.Close()
			userCache = infraredis.NewUserCache(rc, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		}
	}

	bounds := domain.PageBounds{Min: cfg.Page.MinLimit, Max: cfg.Page.MaxLimit, Default: cfg.Page.DefaultLimit}
	userUC := usecase.NewUserUseCase(userRepo, userCache, bounds, log.Component("users"))
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Security.BcryptCost, log.Component("auth"))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:      cfg.App.Name,
		BodyLimit: cfg.HTTP.BodyLimit,
		Log:       log.Component("http"),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Users API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:         userUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		ServiceName:    cfg.App.Name,
		Health:         pool.Ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
