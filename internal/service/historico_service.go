package service

import (
	"context"
	"time"

	"epicontrol/internal/dto"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"gorm.io/gorm"
)

// HistoricoService is the append-only recorder of stock-affecting actions.
// RegistrarTx is always called inside the caller's transaction.
type HistoricoService interface {
	RegistrarTx(tx *gorm.DB, epiID uint, acao string, delta int, ator Ator) error
	Listar(ctx context.Context, epiID uint) ([]dto.HistoricoResponse, error)
}

type historicoService struct {
	repo repository.HistoricoRepository
	now  func() time.Time
}

func NewHistoricoService(repo repository.HistoricoRepository) HistoricoService {
	return &historicoService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *historicoService) RegistrarTx(tx *gorm.DB, epiID uint, acao string, delta int, ator Ator) error {
	return s.repo.CreateTx(tx, &model.HistoricoEpi{
		EpiID:      epiID,
		Data:       s.now(),
		Acao:       acao,
		Quantidade: delta,
		Usuario:    ator.Nome,
	})
}

func (s *historicoService) Listar(ctx context.Context, epiID uint) ([]dto.HistoricoResponse, error) {
	hs, err := s.repo.ListByEpi(ctx, epiID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistoricoResponse, len(hs))
	for i, h := range hs {
		resp[i] = dto.HistoricoResponse{
			ID: h.ID, EpiID: h.EpiID, Data: h.Data,
			Acao: h.Acao, Quantidade: h.Quantidade, Usuario: h.Usuario,
		}
	}
	return resp, nil
}
