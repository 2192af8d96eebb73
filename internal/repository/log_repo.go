package repository

import (
	"context"
	"strings"

	"epicontrol/internal/model"

	"gorm.io/gorm"
)

type LogFiltro struct {
	Busca   string
	Periodo *Periodo
	Page    int
	Limit   int
}

type LogRepository interface {
	Create(ctx context.Context, l *model.Log) error
	CreateTx(tx *gorm.DB, l *model.Log) error
	List(ctx context.Context, filtro LogFiltro) ([]model.Log, int64, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) LogRepository { return &logRepo{db: db} }

func (r *logRepo) Create(ctx context.Context, l *model.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *logRepo) CreateTx(tx *gorm.DB, l *model.Log) error {
	return tx.Create(l).Error
}

func (r *logRepo) List(ctx context.Context, filtro LogFiltro) ([]model.Log, int64, error) {
	var logs []model.Log
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Log{})
	if filtro.Busca != "" {
		like := "%" + strings.ToLower(filtro.Busca) + "%"
		q = q.Where("LOWER(usuario) LIKE ? OR LOWER(acao) LIKE ?", like, like)
	}
	if filtro.Periodo != nil {
		q = q.Where("data_hora BETWEEN ? AND ?", filtro.Periodo.Inicio, filtro.Periodo.Fim)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("data_hora DESC, id DESC")
	if filtro.Limit > 0 {
		page := filtro.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * filtro.Limit).Limit(filtro.Limit)
	}
	err := q.Find(&logs).Error
	return logs, total, err
}
