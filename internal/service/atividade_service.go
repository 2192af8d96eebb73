package service

import (
	"context"
	"time"

	"epicontrol/internal/dto"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"gorm.io/gorm"
)

// AtividadeService is the user activity log. Entries are independent of the
// stock and ledger records and are never deleted.
type AtividadeService interface {
	Registrar(ctx context.Context, ator Ator, acao string) error
	RegistrarTx(tx *gorm.DB, ator Ator, acao string) error
	Listar(ctx context.Context, filter dto.LogFilter) (*dto.LogListResponse, error)
}

type atividadeService struct {
	repo repository.LogRepository
	loc  *time.Location
	now  func() time.Time
}

func NewAtividadeService(repo repository.LogRepository, loc *time.Location) AtividadeService {
	return &atividadeService{repo: repo, loc: loc, now: func() time.Time { return time.Now().UTC() }}
}

func (s *atividadeService) novo(ator Ator, acao string) *model.Log {
	return &model.Log{Usuario: ator.Nome, Acao: acao, DataHora: s.now()}
}

func (s *atividadeService) Registrar(ctx context.Context, ator Ator, acao string) error {
	return s.repo.Create(ctx, s.novo(ator, acao))
}

func (s *atividadeService) RegistrarTx(tx *gorm.DB, ator Ator, acao string) error {
	return s.repo.CreateTx(tx, s.novo(ator, acao))
}

func (s *atividadeService) Listar(ctx context.Context, filter dto.LogFilter) (*dto.LogListResponse, error) {
	logs, total, err := s.repo.List(ctx, repository.LogFiltro{
		Busca:   filter.Busca,
		Periodo: ParsePeriodo(filter.DataInicio, filter.DataFim, s.loc),
		Page:    filter.Page,
		Limit:   filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	data := make([]dto.LogResponse, len(logs))
	for i, l := range logs {
		data[i] = dto.LogResponse{ID: l.ID, Usuario: l.Usuario, Acao: l.Acao, DataHora: l.DataHora}
	}
	return &dto.LogListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
