package infra

import (
	"testing"

	"epicontrol/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase_SQLiteMemoria(t *testing.T) {
	db, err := NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	for _, m := range []interface{}{
		&model.Epi{}, &model.Funcionario{}, &model.EntregaEpi{},
		&model.HistoricoEpi{}, &model.Log{}, &model.Usuario{},
	} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&model.EntregaEpi{}, "idx_entregas_epi_status_data"))

	// re-running is a no-op
	assert.NoError(t, RunMigrations(db))
}
