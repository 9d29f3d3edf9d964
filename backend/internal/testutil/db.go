package testutil

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studytracker/backend/database"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SetupTestStore returns a store backed by a private in-memory database with
// the full schema applied.
func SetupTestStore(t *testing.T) *database.Store {
	t.Helper()
	name := unsafeNameChars.ReplaceAllString(t.Name(), "_")
	dsn := database.DSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})

	if err := database.EnsureSchema(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return database.NewStore(gdb)
}

// Clock is a manually advanced time source.
type Clock struct {
	Current time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{Current: start}
}

func (c *Clock) Now() time.Time {
	return c.Current
}

func (c *Clock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
