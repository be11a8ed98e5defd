package database

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/model"
)

const rollbackSuffix = "_rollback.sql"

// AppliedMigration is a row of the schema_migrations table.
type AppliedMigration struct {
	Name      string    `gorm:"primaryKey;size:255"`
	AppliedAt time.Time `gorm:"not null"`
}

func (AppliedMigration) TableName() string {
	return "schema_migrations"
}

// AutoMigrate creates the schema from the gorm models. It backs SQLite, where
// the PostgreSQL migration files do not apply.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Recipe{},
		&model.Ingredient{},
		&model.Instruction{},
		&model.Task{},
	)
}

// Migrate brings the schema up to date: SQL migrations on PostgreSQL, gorm
// AutoMigrate on SQLite.
func Migrate(db *gorm.DB, migrations fs.FS, log *logger.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("Using GORM auto-migration for SQLite")
		return AutoMigrate(db)
	}
	_, err := RunMigrations(db, migrations, log)
	return err
}

// RunMigrations executes every pending *.sql file of migrations in name order
// and returns the names it applied.
func RunMigrations(db *gorm.DB, migrations fs.FS, log *logger.Logger) ([]string, error) {
	if err := db.AutoMigrate(&AppliedMigration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	files, err := migrationFiles(migrations)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range files {
		var count int64
		if err := db.Model(&AppliedMigration{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug("Skipping migration (already applied)", "migration", name)
			continue
		}

		content, err := fs.ReadFile(migrations, name)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return err
			}
			return tx.Create(&AppliedMigration{Name: name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return applied, fmt.Errorf("failed to execute migration %s: %w", name, err)
		}

		log.Info("Applied migration", "migration", name)
		applied = append(applied, name)
	}

	return applied, nil
}

// RollbackLast reverts the most recently applied migration with its
// <name>_rollback.sql companion and returns its name.
func RollbackLast(db *gorm.DB, migrations fs.FS, log *logger.Logger) (string, error) {
	var last AppliedMigration
	err := db.Order("applied_at DESC").Order("name DESC").Limit(1).Find(&last).Error
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}
	if last.Name == "" {
		return "", fmt.Errorf("no migrations to rollback")
	}

	rollbackFile := strings.TrimSuffix(last.Name, ".sql") + rollbackSuffix
	content, err := fs.ReadFile(migrations, rollbackFile)
	if err != nil {
		return "", fmt.Errorf("rollback file not found: %s: %w", rollbackFile, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(string(content)).Error; err != nil {
			return err
		}
		return tx.Where("name = ?", last.Name).Delete(&AppliedMigration{}).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to rollback migration %s: %w", last.Name, err)
	}

	log.Info("Rolled back migration", "migration", last.Name)
	return last.Name, nil
}

// Applied lists the recorded migrations oldest first.
func Applied(db *gorm.DB) ([]AppliedMigration, error) {
	if err := db.AutoMigrate(&AppliedMigration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	var rows []AppliedMigration
	if err := db.Order("applied_at ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func migrationFiles(migrations fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
