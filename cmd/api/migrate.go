package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/users-api/internal/infrastructure/postgres"
	"github.com/jhoicas/users-api/migrations"
	"github.com/jhoicas/users-api/pkg/config"
	"github.com/jhoicas/users-api/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "migrate",
		Args:    cobra.NoArgs,
		Aliases: []string{"m"},
		Short:   "Migraciones de base de datos",
	}
	cmd.AddCommand(
		newMigrateStepCmd(postgres.Up, "Aplica las migraciones pendientes"),
		newMigrateStepCmd(postgres.Down, "Revierte la última migración"),
	)
	return cmd
}

func newMigrateStepCmd(dir postgres.Direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(dir),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})
			if err := postgres.Migrate(cfg.DB, migrations.FS, dir, log.Component("migrate")); err != nil {
				return fmt.Errorf("migrate %s: %w", dir, err)
			}
			return nil
		},
	}
}
