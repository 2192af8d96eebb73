package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"epicontrol/internal/dto"
	"epicontrol/internal/metrics"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EntregaService is the delivery ledger. A delivery starts as "entregue" and
// ends as "devolvido" or "descartado"; terminal deliveries never change again.
type EntregaService interface {
	Entregar(ctx context.Context, ator Ator, req dto.EntregarRequest) (*dto.EntregaResponse, error)
	Devolver(ctx context.Context, ator Ator, id uint, quantidade int) (*dto.EntregaResponse, error)
	Descartar(ctx context.Context, ator Ator, id uint, quantidade int) (*dto.EntregaResponse, error)
	Obter(ctx context.Context, id uint) (*dto.EntregaResponse, error)
	Listar(ctx context.Context, filter dto.EntregaFilter) (*dto.EntregaListResponse, error)
}

type entregaService struct {
	repo            repository.EntregaRepository
	epiRepo         repository.EpiRepository
	funcionarioRepo repository.FuncionarioRepository
	historico       HistoricoService
	atividade       AtividadeService
	loc             *time.Location
	now             func() time.Time
}

func NewEntregaService(
	repo repository.EntregaRepository,
	epiRepo repository.EpiRepository,
	funcionarioRepo repository.FuncionarioRepository,
	historico HistoricoService,
	atividade AtividadeService,
	loc *time.Location,
) EntregaService {
	return &entregaService{
		repo:            repo,
		epiRepo:         epiRepo,
		funcionarioRepo: funcionarioRepo,
		historico:       historico,
		atividade:       atividade,
		loc:             loc,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// ── Entregar ──────────────────────────────────────────────────────────────────
// Preconditions are checked in a fixed order: employee, item, validation
// secret, quantity. The stock decrement is a single conditional UPDATE so two
// concurrent deliveries can never take the item below zero.

func (s *entregaService) Entregar(ctx context.Context, ator Ator, req dto.EntregarRequest) (*dto.EntregaResponse, error) {
	funcionario, err := s.funcionarioRepo.FindByID(ctx, req.FuncionarioID)
	if err != nil {
		return nil, naoEncontrado(err, "funcionário")
	}
	epi, err := s.epiRepo.FindByID(ctx, req.EpiID)
	if err != nil {
		return nil, naoEncontrado(err, "EPI")
	}
	if !senhaConfere(funcionario.SenhaValidacaoHash, req.SenhaValidacao) {
		return nil, ErrSenhaInvalida
	}
	if req.Quantidade <= 0 {
		return nil, wrap(ErrValidacao, "quantidade deve ser maior que zero")
	}

	entrega := model.EntregaEpi{
		FuncionarioID:      funcionario.ID,
		EpiID:              epi.ID,
		Quantidade:         req.Quantidade,
		QuantidadeEntregue: req.Quantidade,
		DataEntrega:        s.now(),
		EntreguePor:        ator.Nome,
		Status:             model.StatusEntregue,
		Observacao:         req.Observacao,
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		rows, err := s.epiRepo.DecrementarEstoqueTx(tx, epi.ID, req.Quantidade)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: %s", ErrEstoqueInsuficiente, epi.Nome)
		}

		if v := strings.TrimSpace(req.ValidadeEntrega); v != "" {
			validade, err := time.Parse(layoutISO, v)
			if err != nil {
				return wrap(ErrValidacao, "validade da entrega deve estar no formato AAAA-MM-DD")
			}
			entrega.ValidadeEntrega = &validade
		}

		if err := s.repo.CreateTx(tx, &entrega); err != nil {
			return err
		}
		if err := s.historico.RegistrarTx(tx, epi.ID, model.AcaoEntrega, req.Quantidade, ator); err != nil {
			return err
		}
		return s.atividade.RegistrarTx(tx, ator,
			fmt.Sprintf("Entregou %dx %s a %s", req.Quantidade, epi.Nome, funcionario.Nome))
	})
	if err != nil {
		if errors.Is(err, ErrEstoqueInsuficiente) {
			metrics.EstoqueInsuficienteTotal.Inc()
		}
		return nil, err
	}
	metrics.Movimentacao(metrics.TipoEntrega, req.Quantidade)
	log.Info().Uint("entrega_id", entrega.ID).Uint("epi_id", epi.ID).Uint("funcionario_id", funcionario.ID).
		Int("quantidade", req.Quantidade).Str("usuario", ator.Nome).Msg("entrega registrada")

	entrega.Funcionario = funcionario
	entrega.Epi = epi
	return entregaToResponse(&entrega), nil
}

// ── Devolver / Descartar ──────────────────────────────────────────────────────
// Both act on a quantity q with 0 < q <= current quantity. The delivery's
// quantity is overwritten with q; only q equal to the current quantity makes
// the delivery terminal. A return puts q back in stock, a discard does not.

func (s *entregaService) Devolver(ctx context.Context, ator Ator, id uint, quantidade int) (*dto.EntregaResponse, error) {
	return s.finalizar(ctx, ator, id, quantidade, metrics.TipoDevolucao)
}

func (s *entregaService) Descartar(ctx context.Context, ator Ator, id uint, quantidade int) (*dto.EntregaResponse, error) {
	return s.finalizar(ctx, ator, id, quantidade, metrics.TipoDescarte)
}

func (s *entregaService) finalizar(ctx context.Context, ator Ator, id uint, q int, tipo string) (*dto.EntregaResponse, error) {
	var entrega *model.EntregaEpi
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		entrega, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			return naoEncontrado(err, "entrega")
		}
		if entrega.Finalizada() {
			return ErrEntregaFinalizada
		}
		if q <= 0 || q > entrega.Quantidade {
			return fmt.Errorf("%w: informe entre 1 e %d", ErrQuantidadeInvalida, entrega.Quantidade)
		}

		agora := s.now()
		campos := map[string]interface{}{"quantidade": q}
		if q == entrega.Quantidade {
			if tipo == metrics.TipoDevolucao {
				campos["status"] = model.StatusDevolvido
				campos["data_devolucao"] = agora
			} else {
				campos["status"] = model.StatusDescartado
				campos["data_descarte"] = agora
			}
		}

		rows, err := s.repo.FinalizarTx(tx, entrega.ID, campos)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrEntregaFinalizada
		}

		verbo := "Descartou"
		if tipo == metrics.TipoDevolucao {
			verbo = "Devolveu"
			if err := s.epiRepo.IncrementarEstoqueTx(tx, entrega.EpiID, q); err != nil {
				return err
			}
		}
		if err := s.atividade.RegistrarTx(tx, ator,
			fmt.Sprintf("%s %dx %s de %s", verbo, q, nomeEpi(entrega), nomeFuncionario(entrega))); err != nil {
			return err
		}

		entrega, err = s.repo.FindByIDTx(tx, entrega.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.Movimentacao(tipo, q)
	log.Info().Uint("entrega_id", entrega.ID).Str("tipo", tipo).Int("quantidade", q).
		Str("status", entrega.Status).Str("usuario", ator.Nome).Msg("entrega movimentada")
	return entregaToResponse(entrega), nil
}

func (s *entregaService) Obter(ctx context.Context, id uint) (*dto.EntregaResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado(err, "entrega")
	}
	return entregaToResponse(e), nil
}

func (s *entregaService) Listar(ctx context.Context, filter dto.EntregaFilter) (*dto.EntregaListResponse, error) {
	entregas, total, err := s.repo.List(ctx, entregaFiltro(filter, s.loc))
	if err != nil {
		return nil, err
	}
	data := make([]dto.EntregaResponse, len(entregas))
	for i := range entregas {
		data[i] = *entregaToResponse(&entregas[i])
	}
	return &dto.EntregaListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func entregaFiltro(filter dto.EntregaFilter, loc *time.Location) repository.EntregaFiltro {
	status := filter.Status
	if filter.SomenteAtivas {
		status = model.StatusEntregue
	}
	return repository.EntregaFiltro{
		Colaborador: strings.TrimSpace(filter.Colaborador),
		Epi:         strings.TrimSpace(filter.Epi),
		Status:      status,
		Periodo:     ParsePeriodo(filter.DataInicio, filter.DataFim, loc),
		Page:        filter.Page,
		Limit:       filter.Limit,
	}
}

func nomeEpi(e *model.EntregaEpi) string {
	if e.Epi == nil {
		return ""
	}
	return e.Epi.Nome
}

func nomeFuncionario(e *model.EntregaEpi) string {
	if e.Funcionario == nil {
		return ""
	}
	return e.Funcionario.Nome
}

func entregaToResponse(e *model.EntregaEpi) *dto.EntregaResponse {
	resp := &dto.EntregaResponse{
		ID:                 e.ID,
		FuncionarioID:      e.FuncionarioID,
		Funcionario:        nomeFuncionario(e),
		EpiID:              e.EpiID,
		Epi:                nomeEpi(e),
		Quantidade:         e.Quantidade,
		QuantidadeEntregue: e.QuantidadeEntregue,
		Status:             e.Status,
		DataEntrega:        e.DataEntrega,
		EntreguePor:        e.EntreguePor,
		Observacao:         e.Observacao,
		DataDevolucao:      e.DataDevolucao,
		DataDescarte:       e.DataDescarte,
	}
	if e.Funcionario != nil {
		resp.Matricula = e.Funcionario.Matricula
	}
	if e.Epi != nil {
		resp.NumeroCA = e.Epi.NumeroCA
	}
	if e.ValidadeEntrega != nil {
		v := e.ValidadeEntrega.Format(layoutISO)
		resp.ValidadeEntrega = &v
	}
	return resp
}
