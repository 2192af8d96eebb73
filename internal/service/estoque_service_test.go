package service

import (
	"context"
	"testing"
	"time"

	"epicontrol/internal/dto"
	"epicontrol/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCadastrarEpi_RegistraHistoricoELog(t *testing.T) {
	f := newFixture(t)

	epi := f.cadastrarEpi(t, "Capacete", 20)
	assert.NotZero(t, epi.ID)
	assert.Equal(t, 20, epi.Quantidade)

	hs := f.historicoDe(t, epi.ID)
	require.Len(t, hs, 1)
	assert.Equal(t, model.AcaoCadastro, hs[0].Acao)
	assert.Equal(t, 20, hs[0].Quantidade)
	assert.Equal(t, atorTeste.Nome, hs[0].Usuario)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, "Cadastrou novo EPI: Capacete", logs[0].Acao)
}

func TestCadastrarEpi_Validacao(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]dto.CadastrarEpiRequest{
		"sem nome":            {ValidadeCA: "01/01/2030", Quantidade: 1},
		"sem validade":        {Nome: "Luva", Quantidade: 1},
		"quantidade negativa": {Nome: "Luva", ValidadeCA: "01/01/2030", Quantidade: -1},
	}
	for nome, req := range cases {
		t.Run(nome, func(t *testing.T) {
			_, err := f.estoque.Cadastrar(ctx, atorTeste, req)
			assert.ErrorIs(t, err, ErrValidacao)
		})
	}

	n, err := f.epiRepo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.logs(t))
}

func TestEditarEpi_AjusteRegistraDeltaComSinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	epi := f.cadastrarEpi(t, "Óculos", 10)

	resp, err := f.estoque.Editar(ctx, atorTeste, epi.ID, dto.EditarEpiRequest{Quantidade: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Quantidade)
	assert.Equal(t, "Óculos", resp.Nome, "fields not sent stay untouched")

	hs := f.historicoDe(t, epi.ID)
	require.Len(t, hs, 2)
	var ajuste *model.HistoricoEpi
	for i := range hs {
		if hs[i].Acao == model.AcaoAjuste {
			ajuste = &hs[i]
		}
	}
	require.NotNil(t, ajuste)
	assert.Equal(t, -6, ajuste.Quantidade)
}

func TestEditarEpi_SemMudancaDeQuantidadeNaoGeraHistorico(t *testing.T) {
	f := newFixture(t)
	epi := f.cadastrarEpi(t, "Protetor", 10)

	_, err := f.estoque.Editar(context.Background(), atorTeste, epi.ID, dto.EditarEpiRequest{Nome: ptr("Protetor auricular")})
	require.NoError(t, err)

	assert.Len(t, f.historicoDe(t, epi.ID), 1)
	assert.Equal(t, "Editou EPI: Protetor auricular", f.logs(t)[0].Acao)
}

func TestEditarEpi_QuantidadeNegativaRejeitada(t *testing.T) {
	f := newFixture(t)
	epi := f.cadastrarEpi(t, "Bota", 3)

	_, err := f.estoque.Editar(context.Background(), atorTeste, epi.ID, dto.EditarEpiRequest{Quantidade: ptr(-1)})
	assert.ErrorIs(t, err, ErrValidacao)
	assert.Equal(t, 3, f.quantidadeEpi(t, epi.ID))
}

func TestEditarEpi_NaoEncontrado(t *testing.T) {
	f := newFixture(t)
	_, err := f.estoque.Editar(context.Background(), atorTeste, 999, dto.EditarEpiRequest{Quantidade: ptr(1)})
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestRemoverEpi_ApagaEntregasEHistorico(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	epi := f.cadastrarEpi(t, "Capacete", 10)
	fn := f.cadastrarFuncionario(t, "Ana", "M1", "")

	_, err := f.entregas.Entregar(ctx, atorTeste, dto.EntregarRequest{FuncionarioID: fn.ID, EpiID: epi.ID, Quantidade: 2})
	require.NoError(t, err)

	require.NoError(t, f.estoque.Remover(ctx, atorTeste, epi.ID))

	_, err = f.estoque.Obter(ctx, epi.ID)
	assert.ErrorIs(t, err, ErrNaoEncontrado)
	assert.Empty(t, f.historicoDe(t, epi.ID))
	n, err := f.entregaRepo.CountByEpi(ctx, epi.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, "Excluiu EPI: Capacete", f.logs(t)[0].Acao, "activity log survives the cascade")
}

func TestRemoverEpi_NaoEncontrado(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.estoque.Remover(context.Background(), atorTeste, 42), ErrNaoEncontrado)
}

func TestListarEpis_FiltroPorNome(t *testing.T) {
	f := newFixture(t)
	f.cadastrarEpi(t, "Luva de raspa", 5)
	f.cadastrarEpi(t, "Luva nitrílica", 5)
	f.cadastrarEpi(t, "Capacete", 5)

	resp, err := f.estoque.Listar(context.Background(), dto.EpiFilter{Nome: "LUVA"})
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestListarCriticos(t *testing.T) {
	f := newFixture(t)
	f.cadastrarEpi(t, "A", 10)
	f.cadastrarEpi(t, "B", 11)
	f.cadastrarEpi(t, "C", 0)

	resp, err := f.estoque.ListarCriticos(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "C", resp[0].Nome)
	assert.True(t, resp[0].Critico)

	resp, err = f.estoque.ListarCriticos(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestListarVencidos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for nome, validade := range map[string]string{
		"vencido":  "10/03/2025",
		"hoje":     "15/03/2025",
		"futuro":   "01/01/2026",
		"invalido": "sem data",
		"curto":    "1/2/2024",
		"iso":      "2024-01-01",
	} {
		_, err := f.estoque.Cadastrar(ctx, atorTeste, dto.CadastrarEpiRequest{Nome: nome, ValidadeCA: validade, Quantidade: 1})
		require.NoError(t, err)
	}

	resp, err := f.estoque.ListarVencidos(ctx, time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	nomes := make([]string, len(resp))
	for i, e := range resp {
		nomes[i] = e.Nome
	}
	assert.ElementsMatch(t, []string{"vencido", "curto"}, nomes)
}

func TestHistoricoEpi_MaisRecentePrimeiro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	epi := f.cadastrarEpi(t, "Máscara", 5)
	_, err := f.estoque.Editar(ctx, atorTeste, epi.ID, dto.EditarEpiRequest{Quantidade: ptr(8)})
	require.NoError(t, err)

	hs, err := f.estoque.Historico(ctx, epi.ID)
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, model.AcaoAjuste, hs[0].Acao)
	assert.Equal(t, 3, hs[0].Quantidade)

	_, err = f.estoque.Historico(ctx, 999)
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}
