package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"studytracker/backend/models"
	"studytracker/backend/utils"
)

// schemaModels is ordered so that referenced tables are created first.
var schemaModels = []any{
	&models.User{},
	&models.Subject{},
	&models.StudySession{},
	&models.Habit{},
	&models.Goal{},
}

// EnsureSchema creates missing tables and adds missing columns to existing
// ones. It never drops or rebuilds a table, so it is safe to run on every
// start against a database written by an older build.
func EnsureSchema(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, model := range schemaModels {
		if !migrator.HasTable(model) {
			if err := migrator.CreateTable(model); err != nil {
				return fmt.Errorf("create table for %T: %w", model, err)
			}
			continue
		}
		if err := addMissingColumns(db, model); err != nil {
			return err
		}
	}
	return nil
}

func addMissingColumns(db *gorm.DB, model any) error {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Errorf("parse schema for %T: %w", model, err)
	}

	migrator := db.Migrator()
	for _, column := range stmt.Schema.DBNames {
		if migrator.HasColumn(model, column) {
			continue
		}
		field := stmt.Schema.FieldsByDBName[column]
		var err error
		if field.NotNull && !field.HasDefaultValue && !field.PrimaryKey {
			err = addNotNullColumn(db, stmt.Schema.Table, field)
		} else {
			err = migrator.AddColumn(model, column)
		}
		if err != nil {
			return fmt.Errorf("add column %s.%s: %w", stmt.Schema.Table, column, err)
		}
		utils.Logger.Info("added missing column", "table", stmt.Schema.Table, "column", column)
	}
	return nil
}

// addNotNullColumn adds a NOT NULL column without a declared default.
// SQLite refuses that unless the ALTER carries a constant default, so
// existing rows get backfillValue.
func addNotNullColumn(db *gorm.DB, table string, field *schema.Field) error {
	columnType := db.Migrator().FullDataTypeOf(field)
	columnType.SQL += " DEFAULT " + backfillValue(field)
	return db.Exec("ALTER TABLE ? ADD COLUMN ? ?",
		clause.Table{Name: table}, clause.Column{Name: field.DBName}, columnType).Error
}

func backfillValue(field *schema.Field) string {
	switch field.DataType {
	case schema.Time:
		return "'1970-01-01 00:00:00+00:00'"
	case schema.String:
		return "''"
	default:
		return "0"
	}
}
