package main

import (
	"fmt"

	"nft-lending-backend/internal/adapter/repository/mysql"
	"nft-lending-backend/internal/config"
	"nft-lending-backend/internal/infrastructure/db"
	"nft-lending-backend/internal/infrastructure/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := mysql.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("schema migrated", zap.String("driver", cfg.DBDriver))
	return nil
}
