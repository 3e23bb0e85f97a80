package services

import (
	"fmt"

	"juris_control_go/config"
	"juris_control_go/db"
	"juris_control_go/models"
	"juris_control_go/services/tablestore"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenedStore is the table store chosen by configuration, wrapped in the
// read cache. Close releases the database when the SQL backend is used.
type OpenedStore struct {
	tablestore.Store
	Cached   *tablestore.CachedStore
	Blobs    StorageProvider
	database *gorm.DB
}

func (s *OpenedStore) Close() error {
	return db.Close(s.database)
}

// OpenStore builds the configured backend:
//
//	workbook  one .xlsx blob on R2 or the local filesystem
//	sqlite    gorm table_rows on SQLite or Turso
//	memory    process memory, for demos and tests
func OpenStore(cfg *config.Config, logger *zap.Logger) (*OpenedStore, error) {
	opened := &OpenedStore{}

	var backend tablestore.Store
	switch cfg.StoreBackend {
	case config.StoreBackendWorkbook:
		opened.Blobs = NewStorage(cfg, logger)
		backend = tablestore.NewWorkbookStore(NewWorkbookBlob(opened.Blobs), cfg.WorkbookKey, models.Schemas())
	case config.StoreBackendSQLite:
		database, err := db.Initialize(cfg, logger)
		if err != nil {
			return nil, err
		}
		opened.database = database
		backend = db.NewTableStore(database)
	case config.StoreBackendMemory:
		backend = tablestore.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	opened.Cached = tablestore.NewCachedStore(backend, cfg.CacheTTL)
	opened.Store = opened.Cached

	logger.Info("table store ready",
		zap.String("backend", cfg.StoreBackend),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)
	return opened, nil
}
