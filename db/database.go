package db

import (
	"fmt"

	"juris_control_go/config"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the SQL table store database: a remote Turso database
// when TURSO_DATABASE_URL is set, the local SQLite file at DB_PATH otherwise.
// Migrations are applied before returning.
func Initialize(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.TursoDatabaseURL != "" {
		dialector = sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        cfg.TursoDatabaseURL + "?authToken=" + cfg.TursoAuthToken,
		})
	} else {
		// Enable WAL mode for better concurrency support
		dialector = sqlite.Open(cfg.DBPath + "?_journal_mode=WAL")
	}

	database, err := Open(dialector, cfg.Environment)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(database); err != nil {
		return nil, err
	}

	if cfg.TursoDatabaseURL != "" {
		log.Info("database connection established (Turso)")
	} else {
		log.Info("database connection established (WAL mode enabled)", zap.String("path", cfg.DBPath))
	}
	return database, nil
}

// Open connects with a gorm logger sized for the environment.
func Open(dialector gorm.Dialector, environment string) (*gorm.DB, error) {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// AutoMigrate creates the table store schema.
func AutoMigrate(database *gorm.DB) error {
	if database == nil {
		return fmt.Errorf("database not initialized")
	}
	if err := database.AutoMigrate(&TableRow{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func Close(database *gorm.DB) error {
	if database == nil {
		return nil
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
