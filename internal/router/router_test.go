package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"epicontrol/internal/config"
	"epicontrol/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:                  "test",
		JWTSecret:            "segredo-de-teste",
		JWTExpirationHours:   8,
		AdminDefaultPassword: "1234",
		EstoqueCriticoLimite: 10,
		Timezone:             "UTC",
		EmpresaNome:          "ACME",
	}
	db, err := infra.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	svcs := NewServices(cfg, db, nil)
	require.NoError(t, svcs.Auth.GarantirAdminPadrao(context.Background()))
	return &api{t: t, engine: New(cfg, db, nil, svcs)}
}

func (a *api) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *api) decode(w *httptest.ResponseRecorder, v interface{}) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (a *api) login(login, senha string) {
	a.t.Helper()
	a.token = ""
	w := a.do(http.MethodPost, "/v1/auth/login", map[string]string{"login": login, "senha": senha})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	a.decode(w, &resp)
	a.token = resp.AccessToken
}

// created posts body and returns the id of the new resource.
func (a *api) created(path string, body interface{}) uint {
	a.t.Helper()
	w := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		ID uint `json:"id"`
	}
	a.decode(w, &resp)
	return resp.ID
}

func (a *api) quantidadeEpi(id uint) int {
	a.t.Helper()
	w := a.do(http.MethodGet, fmt.Sprintf("/v1/epis/%d", id), nil)
	require.Equal(a.t, http.StatusOK, w.Code)
	var resp struct {
		Quantidade int `json:"quantidade"`
	}
	a.decode(w, &resp)
	return resp.Quantidade
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"disabled"}`, w.Body.String())
}

func TestLogin_Falhas(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/v1/auth/login", map[string]string{"login": "admin", "senha": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/v1/auth/login", map[string]string{"login": "admin"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(http.MethodGet, "/v1/epis", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFluxoEntregaEDevolucao(t *testing.T) {
	a := newAPI(t)
	a.login("admin", "1234")

	epiID := a.created("/v1/epis", map[string]interface{}{
		"nome": "Helmet", "numero_ca": "12345", "validade_ca": "31/12/2030", "quantidade": 20,
	})
	funcID := a.created("/v1/funcionarios", map[string]interface{}{
		"nome": "Empregado", "matricula": "E-1", "setor": "Obra", "data_admissao": "2024-01-10", "senha_validacao": "ok",
	})

	w := a.do(http.MethodPost, "/v1/entregas", map[string]interface{}{
		"funcionario_id": funcID, "epi_id": epiID, "quantidade": 5, "senha_validacao": "errada",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/v1/entregas", map[string]interface{}{
		"funcionario_id": funcID, "epi_id": epiID, "quantidade": 50, "senha_validacao": "ok",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	entregaID := a.created("/v1/entregas", map[string]interface{}{
		"funcionario_id": funcID, "epi_id": epiID, "quantidade": 5, "senha_validacao": "ok",
	})
	assert.Equal(t, 15, a.quantidadeEpi(epiID))

	devolucao := fmt.Sprintf("/v1/entregas/%d/devolucao", entregaID)
	w = a.do(http.MethodPost, devolucao, map[string]int{"quantidade": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, devolucao, map[string]int{"quantidade": 2})
	require.Equal(t, http.StatusOK, w.Code)
	var e struct {
		Quantidade int    `json:"quantidade"`
		Status     string `json:"status"`
	}
	a.decode(w, &e)
	assert.Equal(t, 2, e.Quantidade)
	assert.Equal(t, "entregue", e.Status)
	assert.Equal(t, 17, a.quantidadeEpi(epiID))

	w = a.do(http.MethodPost, devolucao, map[string]int{"quantidade": 2})
	require.Equal(t, http.StatusOK, w.Code)
	a.decode(w, &e)
	assert.Equal(t, "devolvido", e.Status)
	assert.Equal(t, 19, a.quantidadeEpi(epiID))

	w = a.do(http.MethodPost, fmt.Sprintf("/v1/entregas/%d/descarte", entregaID), map[string]int{"quantidade": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodGet, fmt.Sprintf("/v1/entregas/%d/movimentacao.pdf", entregaID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = a.do(http.MethodGet, fmt.Sprintf("/v1/funcionarios/%d/ficha.pdf", funcID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = a.do(http.MethodGet, "/v1/entregas/export.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = a.do(http.MethodGet, fmt.Sprintf("/v1/epis/%d/historico", epiID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hist []struct {
		Acao string `json:"acao"`
	}
	a.decode(w, &hist)
	require.Len(t, hist, 2)
	assert.Equal(t, "Entrega", hist[0].Acao)
	assert.Equal(t, "Cadastro", hist[1].Acao)

	w = a.do(http.MethodGet, "/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		TotalEpis     int64 `json:"total_epis"`
		TotalEntregas int64 `json:"total_entregas"`
	}
	a.decode(w, &dash)
	assert.EqualValues(t, 1, dash.TotalEpis)
	assert.Zero(t, dash.TotalEntregas, "the only delivery was returned")

	w = a.do(http.MethodGet, "/v1/logs?busca=devolveu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs struct {
		Total int64 `json:"total"`
	}
	a.decode(w, &logs)
	assert.EqualValues(t, 2, logs.Total)
}

func TestErrosDeEntrada(t *testing.T) {
	a := newAPI(t)
	a.login("admin", "1234")

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/v1/epis/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/v1/epis/99", nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/v1/entregas/99", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, a.do(http.MethodPost, "/v1/epis", map[string]interface{}{"nome": "Sem CA"}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, a.do(http.MethodGet, "/v1/entregas?status=perdido", nil).Code)

	epiID := a.created("/v1/epis", map[string]interface{}{
		"nome": "Luva", "numero_ca": "1", "validade_ca": "31/12/2030", "quantidade": 1,
	})
	w := a.do(http.MethodPut, fmt.Sprintf("/v1/epis/%d", epiID), map[string]interface{}{"quantidade": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPermissoesPorPerfil(t *testing.T) {
	a := newAPI(t)
	a.login("admin", "1234")
	a.created("/v1/usuarios", map[string]string{"nome": "Operador", "login": "op", "senha": "abcd", "role": "user"})
	funcID := a.created("/v1/funcionarios", map[string]interface{}{
		"nome": "Ana", "matricula": "M1", "setor": "Obra", "data_admissao": "2024-01-10",
	})

	a.login("op", "abcd")
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/epis", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/entregas", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, fmt.Sprintf("/v1/funcionarios/%d/ficha.pdf", funcID), nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/v1/funcionarios", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/v1/logs", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/v1/usuarios", nil).Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodPost, "/v1/auth/logout", nil).Code)
}
