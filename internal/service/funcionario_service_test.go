package service

import (
	"context"
	"testing"

	"epicontrol/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCadastrarFuncionario(t *testing.T) {
	f := newFixture(t)

	fn, err := f.funcionarios.Cadastrar(context.Background(), atorTeste, dto.CadastrarFuncionarioRequest{
		Nome:         " Ana ",
		Matricula:    "M1",
		Setor:        "Manutenção",
		DataAdmissao: "10/01/2024",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", fn.Nome)
	require.NotNil(t, fn.DataAdmissao)
	assert.Equal(t, "2024-01-10", *fn.DataAdmissao)
	assert.False(t, fn.PossuiSenha)
	assert.Equal(t, "Cadastrou funcionário: Ana", f.logs(t)[0].Acao)
}

func TestCadastrarFuncionario_Validacao(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.funcionarios.Cadastrar(ctx, atorTeste, dto.CadastrarFuncionarioRequest{Nome: "Ana", Setor: "X", DataAdmissao: "2024-01-10"})
	assert.ErrorIs(t, err, ErrValidacao)

	_, err = f.funcionarios.Cadastrar(ctx, atorTeste, dto.CadastrarFuncionarioRequest{Nome: "Ana", Matricula: "M1", Setor: "X", DataAdmissao: "ontem"})
	assert.ErrorIs(t, err, ErrValidacao)
}

func TestCadastrarFuncionario_MatriculaDuplicada(t *testing.T) {
	f := newFixture(t)
	f.cadastrarFuncionario(t, "Ana", "M1", "")

	_, err := f.funcionarios.Cadastrar(context.Background(), atorTeste, dto.CadastrarFuncionarioRequest{
		Nome: "Outra", Matricula: "M1", Setor: "X", DataAdmissao: "2024-01-10",
	})
	assert.ErrorIs(t, err, ErrConflito)
}

func TestEditarFuncionario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.cadastrarFuncionario(t, "Ana", "M1", "")
	f.cadastrarFuncionario(t, "Bia", "M2", "")

	got, err := f.funcionarios.Editar(ctx, atorTeste, ana.ID, dto.EditarFuncionarioRequest{Setor: ptr("Almoxarifado")})
	require.NoError(t, err)
	assert.Equal(t, "Almoxarifado", got.Setor)
	assert.Equal(t, "M1", got.Matricula)

	// keeping its own registration number is not a conflict
	_, err = f.funcionarios.Editar(ctx, atorTeste, ana.ID, dto.EditarFuncionarioRequest{Matricula: ptr("M1")})
	assert.NoError(t, err)

	_, err = f.funcionarios.Editar(ctx, atorTeste, ana.ID, dto.EditarFuncionarioRequest{Matricula: ptr("M2")})
	assert.ErrorIs(t, err, ErrConflito)

	_, err = f.funcionarios.Editar(ctx, atorTeste, 999, dto.EditarFuncionarioRequest{})
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestDefinirSenha_PassaASerExigidaNaEntrega(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	epi := f.cadastrarEpi(t, "Luva", 5)
	fn := f.cadastrarFuncionario(t, "Ana", "M1", "")

	require.NoError(t, f.funcionarios.DefinirSenha(ctx, atorTeste, fn.ID, "nova"))
	assert.Equal(t, "Definiu senha de validação para Ana", f.logs(t)[0].Acao)

	got, err := f.funcionarios.Obter(ctx, fn.ID)
	require.NoError(t, err)
	assert.True(t, got.PossuiSenha)

	_, err = f.entregas.Entregar(ctx, atorTeste, dto.EntregarRequest{FuncionarioID: fn.ID, EpiID: epi.ID, Quantidade: 1})
	assert.ErrorIs(t, err, ErrSenhaInvalida)
	f.entregar(t, fn.ID, epi.ID, 1, "nova")

	assert.ErrorIs(t, f.funcionarios.DefinirSenha(ctx, atorTeste, fn.ID, ""), ErrValidacao)
	assert.ErrorIs(t, f.funcionarios.DefinirSenha(ctx, atorTeste, 999, "x"), ErrNaoEncontrado)
}

func TestListarFuncionarios_OrdemAlfabetica(t *testing.T) {
	f := newFixture(t)
	f.cadastrarFuncionario(t, "Carlos", "M3", "")
	f.cadastrarFuncionario(t, "Ana", "M1", "")
	f.cadastrarFuncionario(t, "Bia", "M2", "")

	lista, err := f.funcionarios.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, lista, 3)
	assert.Equal(t, "Ana", lista[0].Nome)
	assert.Equal(t, "Bia", lista[1].Nome)
	assert.Equal(t, "Carlos", lista[2].Nome)
}

func TestRemoverFuncionario_NaoEncontrado(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.funcionarios.Remover(context.Background(), atorTeste, 42), ErrNaoEncontrado)
}
