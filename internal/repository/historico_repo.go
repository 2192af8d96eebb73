package repository

import (
	"context"

	"epicontrol/internal/model"

	"gorm.io/gorm"
)

// HistoricoRepository is append-only: there is no update, and deletion only
// happens when the parent item goes away.
type HistoricoRepository interface {
	ListByEpi(ctx context.Context, epiID uint) ([]model.HistoricoEpi, error)
	CreateTx(tx *gorm.DB, h *model.HistoricoEpi) error
	DeleteByEpiTx(tx *gorm.DB, epiID uint) error
}

type historicoRepo struct{ db *gorm.DB }

func NewHistoricoRepository(db *gorm.DB) HistoricoRepository { return &historicoRepo{db: db} }

func (r *historicoRepo) ListByEpi(ctx context.Context, epiID uint) ([]model.HistoricoEpi, error) {
	var hs []model.HistoricoEpi
	err := r.db.WithContext(ctx).Where("epi_id = ?", epiID).
		Order("data DESC, id DESC").Find(&hs).Error
	return hs, err
}

func (r *historicoRepo) CreateTx(tx *gorm.DB, h *model.HistoricoEpi) error {
	return tx.Create(h).Error
}

func (r *historicoRepo) DeleteByEpiTx(tx *gorm.DB, epiID uint) error {
	return tx.Where("epi_id = ?", epiID).Delete(&model.HistoricoEpi{}).Error
}
