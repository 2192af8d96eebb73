package infra

import (
	"fmt"
	"strings"

	"epicontrol/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the store selected by dsn, runs AutoMigrate for every
// model and then applies the idempotent SQL patches GORM cannot express.
//
// postgres:// and postgresql:// URLs go to PostgreSQL; anything else is a
// SQLite path (":memory:" included). SQLite is single-writer, so the pool is
// pinned to one connection and foreign keys are switched on for it.
func NewDatabase(dsn string) (*gorm.DB, error) {
	isPostgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")

	var dialector gorm.Dialector
	if isPostgres {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isPostgres {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	} else {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("sqlite foreign keys: %w", err)
		}
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates all tables and indexes. Safe to re-run.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Epi{},
		&model.Funcionario{},
		&model.EntregaEpi{},
		&model.HistoricoEpi{},
		&model.Log{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM tags do not cover.
// Every statement uses IF NOT EXISTS so re-running is a no-op on both dialects.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// dashboard / listing queries filter deliveries by status and date together
		`CREATE INDEX IF NOT EXISTS idx_entregas_epi_status_data ON entregas_epi (status, data_entrega)`,
		// activity log screen orders by date and searches by user
		`CREATE INDEX IF NOT EXISTS idx_logs_usuario_data ON logs (usuario, data_hora)`,
		// item history screen
		`CREATE INDEX IF NOT EXISTS idx_historico_epi_epi_data ON historico_epi (epi_id, data)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
