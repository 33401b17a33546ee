package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskgrid/internal/model"
)

// NewDB opens the SQLite database with foreign keys enforced and migrates
// the schema.
func NewDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "taskgrid.db"
	}
	if err := ensureDataDir(dsn); err != nil {
		return nil, err
	}

	// The retention sweep and task deletes remove parents and children in
	// separate statements; foreign keys keep a crash between them from
	// leaving rows pointing at nothing. The pragma goes into the DSN so it
	// holds on every pooled connection, not just the first.
	if !strings.Contains(dsn, "_foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=1"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "", log.LstdFlags), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	migrations := []any{
		&model.User{},
		&model.MasterTask{},
		&model.SubTask{},
		&model.DailySummary{},
		&model.TaskTemplate{},
		&model.TemplateItem{},
	}
	if err := db.AutoMigrate(migrations...); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

// ensureDataDir creates the parent directory of a file-backed DSN.
func ensureDataDir(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return nil
}
