package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "epicontrol.db", cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.EstoqueCriticoLimite)
	assert.Equal(t, 8, cfg.JWTExpirationHours)
	assert.Equal(t, "1234", cfg.AdminDefaultPassword)
	assert.Equal(t, "*", cfg.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ESTOQUE_CRITICO_LIMITE", "3")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/epi")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3, cfg.EstoqueCriticoLimite)
	assert.Equal(t, "postgres://u:p@localhost:5432/epi", cfg.DatabaseURL)
}

func TestLocation_UnknownFallsBackToLocal(t *testing.T) {
	cfg := &Config{Timezone: "Nowhere/Unknown"}
	assert.Equal(t, time.Local, cfg.Location())
}

func TestDashboardCacheTTL(t *testing.T) {
	assert.Equal(t, time.Duration(0), (&Config{}).DashboardCacheTTL())
	assert.Equal(t, 30*time.Second, (&Config{DashboardCacheTTLSeconds: 30}).DashboardCacheTTL())
}
