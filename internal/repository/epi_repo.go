package repository

import (
	"context"
	"strings"

	"epicontrol/internal/model"

	"gorm.io/gorm"
)

// EpiRepository defines the data access contract for PPE items.
// Services depend on this interface, not on the concrete GORM implementation.
type EpiRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Epi, error)
	List(ctx context.Context, nome string) ([]model.Epi, error)
	ListCriticos(ctx context.Context, limite int) ([]model.Epi, error)
	Count(ctx context.Context) (int64, error)

	// Used inside transactions; callers must pass the tx instance
	CreateTx(tx *gorm.DB, e *model.Epi) error
	FindByIDTx(tx *gorm.DB, id uint) (*model.Epi, error)
	UpdateTx(tx *gorm.DB, e *model.Epi) error
	DeleteTx(tx *gorm.DB, id uint) error

	// DecrementarEstoqueTx subtracts qtd only when enough stock is on hand.
	// It returns the number of affected rows: zero means insufficient stock
	// (or a missing item).
	DecrementarEstoqueTx(tx *gorm.DB, id uint, qtd int) (int64, error)
	IncrementarEstoqueTx(tx *gorm.DB, id uint, qtd int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type epiRepo struct{ db *gorm.DB }

func NewEpiRepository(db *gorm.DB) EpiRepository { return &epiRepo{db: db} }

func (r *epiRepo) FindByID(ctx context.Context, id uint) (*model.Epi, error) {
	var e model.Epi
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *epiRepo) List(ctx context.Context, nome string) ([]model.Epi, error) {
	var epis []model.Epi
	q := r.db.WithContext(ctx).Model(&model.Epi{})
	if nome != "" {
		q = q.Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(nome)+"%")
	}
	err := q.Order("nome ASC").Find(&epis).Error
	return epis, err
}

func (r *epiRepo) ListCriticos(ctx context.Context, limite int) ([]model.Epi, error) {
	var epis []model.Epi
	err := r.db.WithContext(ctx).Where("quantidade <= ?", limite).
		Order("quantidade ASC, nome ASC").Find(&epis).Error
	return epis, err
}

func (r *epiRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Epi{}).Count(&n).Error
	return n, err
}

func (r *epiRepo) CreateTx(tx *gorm.DB, e *model.Epi) error {
	return tx.Create(e).Error
}

func (r *epiRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Epi, error) {
	var e model.Epi
	err := tx.First(&e, id).Error
	return &e, err
}

func (r *epiRepo) UpdateTx(tx *gorm.DB, e *model.Epi) error {
	return tx.Save(e).Error
}

func (r *epiRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Epi{}, id).Error
}

func (r *epiRepo) DecrementarEstoqueTx(tx *gorm.DB, id uint, qtd int) (int64, error) {
	res := tx.Model(&model.Epi{}).
		Where("id = ? AND quantidade >= ?", id, qtd).
		Update("quantidade", gorm.Expr("quantidade - ?", qtd))
	return res.RowsAffected, res.Error
}

func (r *epiRepo) IncrementarEstoqueTx(tx *gorm.DB, id uint, qtd int) error {
	return tx.Model(&model.Epi{}).Where("id = ?", id).
		Update("quantidade", gorm.Expr("quantidade + ?", qtd)).Error
}

func (r *epiRepo) DB() *gorm.DB { return r.db }
