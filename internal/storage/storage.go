package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pmtrack/internal/config"
	"pmtrack/internal/util/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db         *gorm.DB
	isPostgres bool
	once       sync.Once

	modelsMu sync.Mutex
	models   []any
)

// sqlite has no notion of partial unique indexes in gorm tags, so they are
// created by hand after AutoMigrate. Postgres gets the same indexes from the
// goose migrations.
var sqliteIndexes = []struct {
	table     string
	statement string
}{
	{
		"project_assignments",
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_project_assignments_active
			ON project_assignments (project_id, user_id) WHERE is_deleted = false`,
	},
	{
		"shadow_delegations",
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_shadow_delegations_active_delegate
			ON shadow_delegations (project_id, shadow_resource_id) WHERE is_deleted = false`,
	},
	{
		"monthly_summaries",
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_monthly_summaries_key
			ON monthly_summaries (project_id, user_id, year, month)`,
	},
}

// RegisterModels is called from init() of every models package so the
// embedded database knows which tables to create.
func RegisterModels(items ...any) {
	modelsMu.Lock()
	defer modelsMu.Unlock()

	models = append(models, items...)
}

func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func IsPostgres() bool {
	GetDb()
	return isPostgres
}

// ForUpdate locks selected rows until the transaction ends. SQLite
// serializes writers on its own, so the clause is only added for Postgres.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if IsPostgres() {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return tx
}

func connect() {
	log := logger.GetLogger()
	dsn := config.GetEnv().DatabaseDsn

	gormConfig := &gorm.Config{
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var err error
	if isPostgresDsn(dsn) {
		isPostgres = true
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	} else {
		db, err = gorm.Open(sqlite.Open(sqliteDsn(dsn)), gormConfig)
	}

	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if !isPostgres {
		if err := migrateEmbedded(); err != nil {
			log.Error("Failed to migrate embedded database", "error", err)
			os.Exit(1)
		}
	}

	log.Info("Database connection established", "postgres", isPostgres)
}

func migrateEmbedded() error {
	modelsMu.Lock()
	registered := append([]any{}, models...)
	modelsMu.Unlock()

	if err := db.AutoMigrate(registered...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, index := range sqliteIndexes {
		if !db.Migrator().HasTable(index.table) {
			continue
		}

		if err := db.Exec(index.statement).Error; err != nil {
			return fmt.Errorf("create index on %s: %w", index.table, err)
		}
	}

	return nil
}

func isPostgresDsn(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func sqliteDsn(dsn string) string {
	if dsn == "" {
		path := filepath.Join(os.TempDir(), fmt.Sprintf("pmtrack-%d.db", os.Getpid()))
		_ = os.Remove(path)
		dsn = path
	}

	dsn = strings.TrimPrefix(dsn, "sqlite://")
	if strings.Contains(dsn, "_pragma") {
		return dsn
	}

	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	return dsn + separator + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}
