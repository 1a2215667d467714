package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "pmtrack/internal/util/env"
	"pmtrack/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting   bool
	RootPath    string
	DatabaseDsn string            `env:"DATABASE_DSN"             env-default:""`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"                 env-default:"development"`
	ServerPort  string            `env:"SERVER_PORT"              env-default:"4005"`
	// cache, empty host disables valkey and switches locks to in-process
	ValkeyHost     string `env:"VALKEY_HOST"              env-default:""`
	ValkeyPort     string `env:"VALKEY_PORT"              env-default:"6379"`
	ValkeyUsername string `env:"VALKEY_USERNAME"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"            env-default:"false"`
	// monthly summaries
	SummaryLockTTLSeconds int    `env:"SUMMARY_LOCK_TTL_SECONDS" env-default:"60"`
	SummaryRetryMaxTries  uint   `env:"SUMMARY_RETRY_MAX_TRIES"  env-default:"5"`
	MigrationsDir         string `env:"MIGRATIONS_DIR"           env-default:"internal/storage/migrations"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func (e EnvVariables) IsCacheEnabled() bool {
	return e.ValkeyHost != ""
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	rootPath := cwd
	for {
		if _, err := os.Stat(filepath.Join(rootPath, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(rootPath)
		if parent == rootPath {
			break
		}

		rootPath = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(rootPath, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		log.Warn("No .env file found, using process environment only")
	}

	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	env.RootPath = rootPath

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.DatabaseDsn == "" {
		log.Info("DATABASE_DSN is empty, embedded SQLite database will be used")
	}

	if !env.IsCacheEnabled() {
		log.Info("VALKEY_HOST is empty, cache and distributed locks are disabled")
	}

	if env.SummaryLockTTLSeconds <= 0 {
		env.SummaryLockTTLSeconds = 60
	}
	if env.SummaryRetryMaxTries == 0 {
		env.SummaryRetryMaxTries = 5
	}

	log.Info("Environment variables loaded successfully!")
}
