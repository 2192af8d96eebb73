package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"epicontrol/internal/dto"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var bcryptCost = 12

type FuncionarioService interface {
	Cadastrar(ctx context.Context, ator Ator, req dto.CadastrarFuncionarioRequest) (*dto.FuncionarioResponse, error)
	Editar(ctx context.Context, ator Ator, id uint, req dto.EditarFuncionarioRequest) (*dto.FuncionarioResponse, error)
	DefinirSenha(ctx context.Context, ator Ator, id uint, senha string) error
	Remover(ctx context.Context, ator Ator, id uint) error
	Obter(ctx context.Context, id uint) (*dto.FuncionarioResponse, error)
	Listar(ctx context.Context) ([]dto.FuncionarioResponse, error)
}

type funcionarioService struct {
	repo        repository.FuncionarioRepository
	entregaRepo repository.EntregaRepository
	atividade   AtividadeService
}

func NewFuncionarioService(
	repo repository.FuncionarioRepository,
	entregaRepo repository.EntregaRepository,
	atividade AtividadeService,
) FuncionarioService {
	return &funcionarioService{repo: repo, entregaRepo: entregaRepo, atividade: atividade}
}

// hashSenha returns the bcrypt hash of a validation secret. The empty secret
// is stored as an empty hash.
func hashSenha(senha string) (string, error) {
	if senha == "" {
		return "", nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(senha), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// senhaConfere compares a typed secret with the stored hash. An employee with
// no secret only matches the empty input.
func senhaConfere(hash, senha string) bool {
	if hash == "" {
		return senha == ""
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

func (s *funcionarioService) parseAdmissao(v string) (*time.Time, error) {
	t, ok := parseData(v, time.UTC)
	if !ok {
		return nil, wrap(ErrValidacao, "data de admissão inválida")
	}
	return &t, nil
}

func (s *funcionarioService) Cadastrar(ctx context.Context, ator Ator, req dto.CadastrarFuncionarioRequest) (*dto.FuncionarioResponse, error) {
	f := model.Funcionario{
		Nome:      strings.TrimSpace(req.Nome),
		Matricula: strings.TrimSpace(req.Matricula),
		Setor:     strings.TrimSpace(req.Setor),
	}
	if f.Nome == "" || f.Matricula == "" || f.Setor == "" || strings.TrimSpace(req.DataAdmissao) == "" {
		return nil, wrap(ErrValidacao, "nome, matrícula, setor e data de admissão são obrigatórios")
	}
	admissao, err := s.parseAdmissao(req.DataAdmissao)
	if err != nil {
		return nil, err
	}
	f.DataAdmissao = admissao
	if f.SenhaValidacaoHash, err = hashSenha(req.SenhaValidacao); err != nil {
		return nil, err
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existe, err := s.repo.ExistsMatriculaTx(tx, f.Matricula, 0)
		if err != nil {
			return err
		}
		if existe {
			return wrap(ErrConflito, "matrícula "+f.Matricula+" já cadastrada")
		}
		if err := s.repo.CreateTx(tx, &f); err != nil {
			return err
		}
		return s.atividade.RegistrarTx(tx, ator, "Cadastrou funcionário: "+f.Nome)
	})
	if err != nil {
		return nil, err
	}
	return funcionarioToResponse(&f), nil
}

func (s *funcionarioService) Editar(ctx context.Context, ator Ator, id uint, req dto.EditarFuncionarioRequest) (*dto.FuncionarioResponse, error) {
	var f *model.Funcionario
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		f, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			return naoEncontrado(err, "funcionário")
		}
		if req.Nome != nil {
			if f.Nome = strings.TrimSpace(*req.Nome); f.Nome == "" {
				return wrap(ErrValidacao, "nome é obrigatório")
			}
		}
		if req.Setor != nil {
			f.Setor = strings.TrimSpace(*req.Setor)
		}
		if req.DataAdmissao != nil {
			if f.DataAdmissao, err = s.parseAdmissao(*req.DataAdmissao); err != nil {
				return err
			}
		}
		if req.Matricula != nil {
			matricula := strings.TrimSpace(*req.Matricula)
			if matricula == "" {
				return wrap(ErrValidacao, "matrícula é obrigatória")
			}
			existe, err := s.repo.ExistsMatriculaTx(tx, matricula, f.ID)
			if err != nil {
				return err
			}
			if existe {
				return wrap(ErrConflito, "matrícula "+matricula+" já cadastrada")
			}
			f.Matricula = matricula
		}
		if err := s.repo.UpdateTx(tx, f); err != nil {
			return err
		}
		return s.atividade.RegistrarTx(tx, ator, "Editou funcionário: "+f.Nome)
	})
	if err != nil {
		return nil, err
	}
	return funcionarioToResponse(f), nil
}

func (s *funcionarioService) DefinirSenha(ctx context.Context, ator Ator, id uint, senha string) error {
	if senha == "" {
		return wrap(ErrValidacao, "senha é obrigatória")
	}
	hash, err := hashSenha(senha)
	if err != nil {
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		f, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return naoEncontrado(err, "funcionário")
		}
		f.SenhaValidacaoHash = hash
		if err := s.repo.UpdateTx(tx, f); err != nil {
			return err
		}
		return s.atividade.RegistrarTx(tx, ator, "Definiu senha de validação para "+f.Nome)
	})
}

// Remover deletes the employee and every delivery made to them.
func (s *funcionarioService) Remover(ctx context.Context, ator Ator, id uint) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		f, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return naoEncontrado(err, "funcionário")
		}
		if err := s.entregaRepo.DeleteByFuncionarioTx(tx, f.ID); err != nil {
			return fmt.Errorf("removendo entregas: %w", err)
		}
		if err := s.repo.DeleteTx(tx, f.ID); err != nil {
			return err
		}
		return s.atividade.RegistrarTx(tx, ator, "Excluiu funcionário: "+f.Nome)
	})
}

func (s *funcionarioService) Obter(ctx context.Context, id uint) (*dto.FuncionarioResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado(err, "funcionário")
	}
	return funcionarioToResponse(f), nil
}

func (s *funcionarioService) Listar(ctx context.Context) ([]dto.FuncionarioResponse, error) {
	fs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FuncionarioResponse, len(fs))
	for i := range fs {
		resp[i] = *funcionarioToResponse(&fs[i])
	}
	return resp, nil
}

func funcionarioToResponse(f *model.Funcionario) *dto.FuncionarioResponse {
	var admissao *string
	if f.DataAdmissao != nil {
		v := f.DataAdmissao.Format(layoutISO)
		admissao = &v
	}
	return &dto.FuncionarioResponse{
		ID:           f.ID,
		Nome:         f.Nome,
		Matricula:    f.Matricula,
		Setor:        f.Setor,
		DataAdmissao: admissao,
		PossuiSenha:  f.SenhaValidacaoHash != "",
	}
}
