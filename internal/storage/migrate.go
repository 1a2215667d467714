package storage

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"pmtrack/internal/config"
	"pmtrack/internal/util/logger"
)

// RunMigrations applies the goose migrations on Postgres. The embedded
// database is migrated from the registered models on connect instead.
func RunMigrations() error {
	log := logger.GetLogger()

	if !IsPostgres() {
		log.Info("Embedded database in use, skipping goose migrations")
		return nil
	}

	log.Info("Running database migrations...")

	env := config.GetEnv()

	migrationsDir := env.MigrationsDir
	if !filepath.IsAbs(migrationsDir) {
		migrationsDir = filepath.Join(env.RootPath, migrationsDir)
	}

	cmd := exec.Command("goose", "-dir", migrationsDir, "up")
	cmd.Env = append(
		os.Environ(),
		"GOOSE_DRIVER=postgres",
		"GOOSE_DBSTRING="+env.DatabaseDsn,
	)
	cmd.Dir = env.RootPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("goose up failed: %w, output: %s", err, string(output))
	}

	log.Info("Database migrations completed successfully", "output", string(output))

	return nil
}
