package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studytracker/backend/utils"
)

// Store owns the gorm handle for the single-file database. Request code
// reaches the database only through Do, which pins one pooled connection
// for the duration of the callback.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the SQLite file at path with foreign keys enforced.
func Open(path string, gormLogLevel string) (*Store, error) {
	gormLogger, levelErr := newGormLogger(gormLogLevel)
	if levelErr != nil {
		utils.Logger.Error("invalid gorm log level", "value", gormLogLevel, "error", levelErr)
	}

	db, err := gorm.Open(sqlite.Open(DSN(path)), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access underlying database: %w", err)
	}
	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY
	// between pooled connections.
	sqlDB.SetMaxOpenConns(1)

	return NewStore(db), nil
}

// DSN turns a file path into a sqlite URI with foreign key enforcement on.
// Paths that are already URIs keep their own parameters.
func DSN(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Do runs fn on a dedicated connection and releases it when fn returns,
// whatever the outcome.
func (s *Store) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(conn.Session(&gorm.Session{NewDB: true}))
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
