package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"epicontrol/internal/dto"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"gorm.io/gorm"
)

// EstoqueService manages PPE item definitions and their on-hand quantity.
// Every mutation writes its history and activity entries in the same
// transaction as the change itself.
type EstoqueService interface {
	Cadastrar(ctx context.Context, ator Ator, req dto.CadastrarEpiRequest) (*dto.EpiResponse, error)
	Editar(ctx context.Context, ator Ator, id uint, req dto.EditarEpiRequest) (*dto.EpiResponse, error)
	Remover(ctx context.Context, ator Ator, id uint) error
	Obter(ctx context.Context, id uint) (*dto.EpiResponse, error)
	Listar(ctx context.Context, filter dto.EpiFilter) ([]dto.EpiResponse, error)
	ListarCriticos(ctx context.Context, limite int) ([]dto.EpiResponse, error)
	ListarVencidos(ctx context.Context, hoje time.Time) ([]dto.EpiResponse, error)
	Historico(ctx context.Context, id uint) ([]dto.HistoricoResponse, error)
}

type estoqueService struct {
	repo        repository.EpiRepository
	entregaRepo repository.EntregaRepository
	historico   HistoricoService
	historicoDB repository.HistoricoRepository
	atividade   AtividadeService
	limite      int
}

func NewEstoqueService(
	repo repository.EpiRepository,
	entregaRepo repository.EntregaRepository,
	historicoRepo repository.HistoricoRepository,
	historico HistoricoService,
	atividade AtividadeService,
	limiteCritico int,
) EstoqueService {
	if limiteCritico <= 0 {
		limiteCritico = 10
	}
	return &estoqueService{
		repo:        repo,
		entregaRepo: entregaRepo,
		historico:   historico,
		historicoDB: historicoRepo,
		atividade:   atividade,
		limite:      limiteCritico,
	}
}

func (s *estoqueService) Cadastrar(ctx context.Context, ator Ator, req dto.CadastrarEpiRequest) (*dto.EpiResponse, error) {
	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		return nil, wrap(ErrValidacao, "nome é obrigatório")
	}
	if strings.TrimSpace(req.ValidadeCA) == "" {
		return nil, wrap(ErrValidacao, "validade do CA é obrigatória")
	}
	if req.Quantidade < 0 {
		return nil, wrap(ErrValidacao, "quantidade não pode ser negativa")
	}

	epi := model.Epi{
		Nome:          nome,
		CodigoProduto: strings.TrimSpace(req.CodigoProduto),
		NumeroCA:      strings.TrimSpace(req.NumeroCA),
		ValidadeCA:    strings.TrimSpace(req.ValidadeCA),
		Quantidade:    req.Quantidade,
		Observacao:    req.Observacao,
	}
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &epi); err != nil {
			return err
		}
		if err := s.historico.RegistrarTx(tx, epi.ID, model.AcaoCadastro, epi.Quantidade, ator); err != nil {
			return err
		}
		return s.atividade.RegistrarTx(tx, ator, "Cadastrou novo EPI: "+epi.Nome)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(&epi), nil
}

func (s *estoqueService) Editar(ctx context.Context, ator Ator, id uint, req dto.EditarEpiRequest) (*dto.EpiResponse, error) {
	if req.Quantidade != nil && *req.Quantidade < 0 {
		return nil, wrap(ErrValidacao, "quantidade não pode ser negativa")
	}
	if req.Nome != nil && strings.TrimSpace(*req.Nome) == "" {
		return nil, wrap(ErrValidacao, "nome é obrigatório")
	}
	if req.ValidadeCA != nil && strings.TrimSpace(*req.ValidadeCA) == "" {
		return nil, wrap(ErrValidacao, "validade do CA é obrigatória")
	}

	var epi *model.Epi
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		epi, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			return naoEncontrado(err, "EPI")
		}

		anterior := epi.Quantidade
		if req.Nome != nil {
			epi.Nome = strings.TrimSpace(*req.Nome)
		}
		if req.CodigoProduto != nil {
			epi.CodigoProduto = strings.TrimSpace(*req.CodigoProduto)
		}
		if req.NumeroCA != nil {
			epi.NumeroCA = strings.TrimSpace(*req.NumeroCA)
		}
		if req.ValidadeCA != nil {
			epi.ValidadeCA = strings.TrimSpace(*req.ValidadeCA)
		}
		if req.Observacao != nil {
			epi.Observacao = *req.Observacao
		}
		if req.Quantidade != nil {
			epi.Quantidade = *req.Quantidade
		}

		if err := s.repo.UpdateTx(tx, epi); err != nil {
			return err
		}
		if delta := epi.Quantidade - anterior; delta != 0 {
			if err := s.historico.RegistrarTx(tx, epi.ID, model.AcaoAjuste, delta, ator); err != nil {
				return err
			}
		}
		return s.atividade.RegistrarTx(tx, ator, "Editou EPI: "+epi.Nome)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(epi), nil
}

// Remover deletes the item together with its deliveries and history.
// The Exclusão history entry is written first and goes away with the rest;
// only the activity log keeps a trace of the removal.
func (s *estoqueService) Remover(ctx context.Context, ator Ator, id uint) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		epi, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return naoEncontrado(err, "EPI")
		}
		if err := s.historico.RegistrarTx(tx, epi.ID, model.AcaoExclusao, 0, ator); err != nil {
			return err
		}
		if err := s.atividade.RegistrarTx(tx, ator, "Excluiu EPI: "+epi.Nome); err != nil {
			return err
		}
		if err := s.entregaRepo.DeleteByEpiTx(tx, epi.ID); err != nil {
			return fmt.Errorf("removendo entregas: %w", err)
		}
		if err := s.historicoDB.DeleteByEpiTx(tx, epi.ID); err != nil {
			return fmt.Errorf("removendo histórico: %w", err)
		}
		return s.repo.DeleteTx(tx, epi.ID)
	})
}

func (s *estoqueService) Obter(ctx context.Context, id uint) (*dto.EpiResponse, error) {
	epi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado(err, "EPI")
	}
	return s.toResponse(epi), nil
}

func (s *estoqueService) Listar(ctx context.Context, filter dto.EpiFilter) ([]dto.EpiResponse, error) {
	epis, err := s.repo.List(ctx, strings.TrimSpace(filter.Nome))
	if err != nil {
		return nil, err
	}
	return s.toResponses(epis), nil
}

func (s *estoqueService) ListarCriticos(ctx context.Context, limite int) ([]dto.EpiResponse, error) {
	if limite <= 0 {
		limite = s.limite
	}
	epis, err := s.repo.ListCriticos(ctx, limite)
	if err != nil {
		return nil, err
	}
	return s.toResponses(epis), nil
}

func (s *estoqueService) ListarVencidos(ctx context.Context, hoje time.Time) ([]dto.EpiResponse, error) {
	epis, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	vencidos := make([]model.Epi, 0)
	for _, e := range epis {
		if CAVencido(e.ValidadeCA, hoje) {
			vencidos = append(vencidos, e)
		}
	}
	return s.toResponses(vencidos), nil
}

func (s *estoqueService) Historico(ctx context.Context, id uint) ([]dto.HistoricoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, naoEncontrado(err, "EPI")
	}
	return s.historico.Listar(ctx, id)
}

func (s *estoqueService) toResponse(e *model.Epi) *dto.EpiResponse {
	return &dto.EpiResponse{
		ID:            e.ID,
		Nome:          e.Nome,
		CodigoProduto: e.CodigoProduto,
		NumeroCA:      e.NumeroCA,
		ValidadeCA:    e.ValidadeCA,
		Quantidade:    e.Quantidade,
		Observacao:    e.Observacao,
		Critico:       e.Quantidade <= s.limite,
	}
}

func (s *estoqueService) toResponses(epis []model.Epi) []dto.EpiResponse {
	resp := make([]dto.EpiResponse, len(epis))
	for i := range epis {
		resp[i] = *s.toResponse(&epis[i])
	}
	return resp
}
