//go:build integration

package router

// Runs the HTTP flow against real PostgreSQL and Redis.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"epicontrol/internal/config"
	"epicontrol/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newAPIContainers(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("epicontrol_test"),
		tcPostgres.WithUsername("epicontrol"),
		tcPostgres.WithPassword("epicontrol"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                      "test",
		DatabaseURL:              pgURL,
		RedisURL:                 rdURL,
		DashboardCacheTTLSeconds: 60,
		JWTSecret:                "segredo-de-teste",
		JWTExpirationHours:       8,
		AdminDefaultPassword:     "1234",
		EstoqueCriticoLimite:     10,
		Timezone:                 "UTC",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	svcs := NewServices(cfg, db, rdb)
	require.NoError(t, svcs.Auth.GarantirAdminPadrao(ctx))
	return &api{t: t, engine: New(cfg, db, rdb, svcs)}
}

func TestIntegracao_EntregaConcorrenteNaoNegativa(t *testing.T) {
	a := newAPIContainers(t)
	a.login("admin", "1234")

	w := a.do(http.MethodGet, "/health", nil)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"connected"}`, w.Body.String())

	epiID := a.created("/v1/epis", map[string]interface{}{
		"nome": "Luva", "numero_ca": "1", "validade_ca": "31/12/2030", "quantidade": 5,
	})
	funcID := a.created("/v1/funcionarios", map[string]interface{}{
		"nome": "Ana", "matricula": "M1", "setor": "Obra", "data_admissao": "2024-01-10",
	})

	// ten concurrent single-unit deliveries against five units
	codes := make(chan int, 10)
	for i := 0; i < 10; i++ {
		go func() {
			codes <- a.do(http.MethodPost, "/v1/entregas", map[string]interface{}{
				"funcionario_id": funcID, "epi_id": epiID, "quantidade": 1,
			}).Code
		}()
	}
	criadas, conflitos := 0, 0
	for i := 0; i < 10; i++ {
		switch <-codes {
		case http.StatusCreated:
			criadas++
		case http.StatusConflict:
			conflitos++
		}
	}
	assert.Equal(t, 5, criadas)
	assert.Equal(t, 5, conflitos)
	assert.Equal(t, 0, a.quantidadeEpi(epiID))
}

func TestIntegracao_DashboardEmCache(t *testing.T) {
	a := newAPIContainers(t)
	a.login("admin", "1234")

	var dash struct {
		TotalEpis int64 `json:"total_epis"`
	}
	w := a.do(http.MethodGet, "/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	a.decode(w, &dash)
	assert.Zero(t, dash.TotalEpis)

	a.created("/v1/epis", map[string]interface{}{
		"nome": "Bota", "numero_ca": "2", "validade_ca": "31/12/2030", "quantidade": 1,
	})

	w = a.do(http.MethodGet, "/v1/dashboard", nil)
	a.decode(w, &dash)
	assert.Zero(t, dash.TotalEpis, "served from redis until the TTL expires")

	hoje := time.Now().UTC().Format("2006-01-02")
	w = a.do(http.MethodGet, fmt.Sprintf("/v1/dashboard?data_inicio=%s&data_fim=%s", hoje, hoje), nil)
	a.decode(w, &dash)
	assert.EqualValues(t, 1, dash.TotalEpis)
}
