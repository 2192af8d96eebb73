package service

import (
	"context"
	"testing"
	"time"

	"epicontrol/internal/config"
	"epicontrol/internal/dto"
	"epicontrol/internal/infra"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var agoraTeste = time.Date(2025, 3, 15, 13, 0, 0, 0, time.UTC)

var atorTeste = Ator{Nome: "Operador", Role: model.RoleAdmin}

// fixture wires every service over a fresh in-memory SQLite database with a
// fixed clock.
type fixture struct {
	db *gorm.DB

	epiRepo         repository.EpiRepository
	funcionarioRepo repository.FuncionarioRepository
	entregaRepo     repository.EntregaRepository
	historicoRepo   repository.HistoricoRepository
	logRepo         repository.LogRepository
	usuarioRepo     repository.UsuarioRepository

	atividade    AtividadeService
	historico    HistoricoService
	estoque      EstoqueService
	funcionarios FuncionarioService
	entregas     EntregaService
	relatorios   RelatorioService
	auth         AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bcryptCost = bcrypt.MinCost

	db, err := infra.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	clock := func() time.Time { return agoraTeste }

	f := &fixture{
		db:              db,
		epiRepo:         repository.NewEpiRepository(db),
		funcionarioRepo: repository.NewFuncionarioRepository(db),
		entregaRepo:     repository.NewEntregaRepository(db),
		historicoRepo:   repository.NewHistoricoRepository(db),
		logRepo:         repository.NewLogRepository(db),
		usuarioRepo:     repository.NewUsuarioRepository(db),
	}

	atividade := NewAtividadeService(f.logRepo, time.UTC).(*atividadeService)
	atividade.now = clock
	historico := NewHistoricoService(f.historicoRepo).(*historicoService)
	historico.now = clock
	f.atividade, f.historico = atividade, historico

	f.estoque = NewEstoqueService(f.epiRepo, f.entregaRepo, f.historicoRepo, historico, atividade, 10)
	f.funcionarios = NewFuncionarioService(f.funcionarioRepo, f.entregaRepo, atividade)

	entregas := NewEntregaService(f.entregaRepo, f.epiRepo, f.funcionarioRepo, historico, atividade, time.UTC).(*entregaService)
	entregas.now = clock
	f.entregas = entregas

	relatorios := NewRelatorioService(RelatorioDeps{
		EpiRepo:         f.epiRepo,
		FuncionarioRepo: f.funcionarioRepo,
		EntregaRepo:     f.entregaRepo,
		UsuarioRepo:     f.usuarioRepo,
		Empresa:         infra.Empresa{Nome: "ACME", CNPJ: "00.000.000/0001-00"},
		LimiteCritico:   10,
		Location:        time.UTC,
	}).(*relatorioService)
	relatorios.now = clock
	f.relatorios = relatorios

	cfg := &config.Config{JWTSecret: "segredo-de-teste", JWTExpirationHours: 8, AdminDefaultPassword: "1234"}
	f.auth = NewAuthService(f.usuarioRepo, atividade, cfg)
	return f
}

func (f *fixture) cadastrarEpi(t *testing.T, nome string, qtd int) *dto.EpiResponse {
	t.Helper()
	epi, err := f.estoque.Cadastrar(context.Background(), atorTeste, dto.CadastrarEpiRequest{
		Nome:       nome,
		NumeroCA:   "12345",
		ValidadeCA: "31/12/2030",
		Quantidade: qtd,
	})
	require.NoError(t, err)
	return epi
}

func (f *fixture) cadastrarFuncionario(t *testing.T, nome, matricula, senha string) *dto.FuncionarioResponse {
	t.Helper()
	fn, err := f.funcionarios.Cadastrar(context.Background(), atorTeste, dto.CadastrarFuncionarioRequest{
		Nome:           nome,
		Matricula:      matricula,
		Setor:          "Produção",
		DataAdmissao:   "2024-01-10",
		SenhaValidacao: senha,
	})
	require.NoError(t, err)
	return fn
}

func (f *fixture) quantidadeEpi(t *testing.T, id uint) int {
	t.Helper()
	epi, err := f.epiRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return epi.Quantidade
}

func (f *fixture) logs(t *testing.T) []model.Log {
	t.Helper()
	logs, _, err := f.logRepo.List(context.Background(), repository.LogFiltro{})
	require.NoError(t, err)
	return logs
}

func (f *fixture) historicoDe(t *testing.T, epiID uint) []model.HistoricoEpi {
	t.Helper()
	hs, err := f.historicoRepo.ListByEpi(context.Background(), epiID)
	require.NoError(t, err)
	return hs
}
