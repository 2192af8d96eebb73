package repository

import (
	"context"
	"strings"
	"time"

	"epicontrol/internal/model"

	"gorm.io/gorm"
)

// EntregaFiltro narrows delivery listings. Zero values mean "no filter";
// Limit 0 returns every matching row.
type EntregaFiltro struct {
	Colaborador string
	Epi         string
	Status      string
	Periodo     *Periodo
	Page        int
	Limit       int
}

// ContagemPorFuncionario is one row of the deliveries-per-employee ranking.
type ContagemPorFuncionario struct {
	FuncionarioID uint
	Nome          string
	Total         int64
}

// SomaPorEpi is one row of the most-delivered items ranking.
type SomaPorEpi struct {
	EpiID uint
	Nome  string
	Total int64
}

type EntregaRepository interface {
	FindByID(ctx context.Context, id uint) (*model.EntregaEpi, error)
	List(ctx context.Context, filtro EntregaFiltro) ([]model.EntregaEpi, int64, error)
	ListByFuncionario(ctx context.Context, funcionarioID uint, periodo *Periodo) ([]model.EntregaEpi, error)
	CountByEpi(ctx context.Context, epiID uint) (int64, error)
	CountByFuncionario(ctx context.Context, funcionarioID uint) (int64, error)

	// Dashboard aggregates. All of them only consider status "entregue".
	CountEntreguesDesde(ctx context.Context, desde time.Time) (int64, error)
	CountEntregues(ctx context.Context, periodo *Periodo) (int64, error)
	CountPendentes(ctx context.Context, periodo *Periodo) (int64, error)
	ContagemPorFuncionario(ctx context.Context, periodo *Periodo) ([]ContagemPorFuncionario, error)
	TopEpis(ctx context.Context, periodo *Periodo, limite int) ([]SomaPorEpi, error)

	CreateTx(tx *gorm.DB, e *model.EntregaEpi) error
	FindByIDTx(tx *gorm.DB, id uint) (*model.EntregaEpi, error)
	// FinalizarTx applies campos only while the delivery is still "entregue"
	// and returns the affected row count.
	FinalizarTx(tx *gorm.DB, id uint, campos map[string]interface{}) (int64, error)
	DeleteByEpiTx(tx *gorm.DB, epiID uint) error
	DeleteByFuncionarioTx(tx *gorm.DB, funcionarioID uint) error

	DB() *gorm.DB
}

type entregaRepo struct{ db *gorm.DB }

func NewEntregaRepository(db *gorm.DB) EntregaRepository { return &entregaRepo{db: db} }

func (r *entregaRepo) DB() *gorm.DB { return r.db }

func (r *entregaRepo) FindByID(ctx context.Context, id uint) (*model.EntregaEpi, error) {
	var e model.EntregaEpi
	err := r.db.WithContext(ctx).Preload("Funcionario").Preload("Epi").First(&e, id).Error
	return &e, err
}

func (r *entregaRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.EntregaEpi, error) {
	var e model.EntregaEpi
	err := tx.Preload("Funcionario").Preload("Epi").First(&e, id).Error
	return &e, err
}

func (r *entregaRepo) List(ctx context.Context, filtro EntregaFiltro) ([]model.EntregaEpi, int64, error) {
	var entregas []model.EntregaEpi
	var total int64

	q := r.db.WithContext(ctx).Model(&model.EntregaEpi{}).
		Joins("JOIN funcionarios ON funcionarios.id = entregas_epi.funcionario_id").
		Joins("JOIN epis ON epis.id = entregas_epi.epi_id")

	if filtro.Colaborador != "" {
		q = q.Where("LOWER(funcionarios.nome) LIKE ?", "%"+strings.ToLower(filtro.Colaborador)+"%")
	}
	if filtro.Epi != "" {
		q = q.Where("LOWER(epis.nome) LIKE ?", "%"+strings.ToLower(filtro.Epi)+"%")
	}
	if filtro.Status != "" {
		q = q.Where("entregas_epi.status = ?", filtro.Status)
	}
	if filtro.Periodo != nil {
		q = q.Where("entregas_epi.data_entrega BETWEEN ? AND ?", filtro.Periodo.Inicio, filtro.Periodo.Fim)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Select("entregas_epi.*").Preload("Funcionario").Preload("Epi").
		Order("entregas_epi.data_entrega DESC, entregas_epi.id DESC")
	if filtro.Limit > 0 {
		page := filtro.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * filtro.Limit).Limit(filtro.Limit)
	}
	err := q.Find(&entregas).Error
	return entregas, total, err
}

func (r *entregaRepo) ListByFuncionario(ctx context.Context, funcionarioID uint, periodo *Periodo) ([]model.EntregaEpi, error) {
	var entregas []model.EntregaEpi
	q := r.db.WithContext(ctx).Preload("Epi").Where("funcionario_id = ?", funcionarioID)
	if periodo != nil {
		q = q.Where("data_entrega BETWEEN ? AND ?", periodo.Inicio, periodo.Fim)
	}
	err := q.Order("data_entrega ASC, id ASC").Find(&entregas).Error
	return entregas, err
}

func (r *entregaRepo) CountByEpi(ctx context.Context, epiID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.EntregaEpi{}).Where("epi_id = ?", epiID).Count(&n).Error
	return n, err
}

func (r *entregaRepo) CountByFuncionario(ctx context.Context, funcionarioID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.EntregaEpi{}).Where("funcionario_id = ?", funcionarioID).Count(&n).Error
	return n, err
}

// entregues starts a fresh query on "entregue" deliveries, optionally bounded
// by periodo. Each aggregate builds its own chain so conditions never leak
// between statements.
func (r *entregaRepo) entregues(ctx context.Context, periodo *Periodo) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.EntregaEpi{}).
		Where("entregas_epi.status = ?", model.StatusEntregue)
	if periodo != nil {
		q = q.Where("entregas_epi.data_entrega BETWEEN ? AND ?", periodo.Inicio, periodo.Fim)
	}
	return q
}

func (r *entregaRepo) CountEntreguesDesde(ctx context.Context, desde time.Time) (int64, error) {
	var n int64
	err := r.entregues(ctx, nil).Where("entregas_epi.data_entrega >= ?", desde).Count(&n).Error
	return n, err
}

func (r *entregaRepo) CountEntregues(ctx context.Context, periodo *Periodo) (int64, error) {
	var n int64
	err := r.entregues(ctx, periodo).Count(&n).Error
	return n, err
}

func (r *entregaRepo) CountPendentes(ctx context.Context, periodo *Periodo) (int64, error) {
	var n int64
	err := r.entregues(ctx, periodo).Where("entregas_epi.quantidade > 0").Count(&n).Error
	return n, err
}

func (r *entregaRepo) ContagemPorFuncionario(ctx context.Context, periodo *Periodo) ([]ContagemPorFuncionario, error) {
	var rows []ContagemPorFuncionario
	err := r.entregues(ctx, periodo).
		Select("funcionarios.id AS funcionario_id, funcionarios.nome AS nome, COUNT(entregas_epi.id) AS total").
		Joins("JOIN funcionarios ON funcionarios.id = entregas_epi.funcionario_id").
		Group("funcionarios.id, funcionarios.nome").
		Order("total DESC, funcionarios.nome ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *entregaRepo) TopEpis(ctx context.Context, periodo *Periodo, limite int) ([]SomaPorEpi, error) {
	var rows []SomaPorEpi
	err := r.entregues(ctx, periodo).
		Select("epis.id AS epi_id, epis.nome AS nome, COALESCE(SUM(entregas_epi.quantidade), 0) AS total").
		Joins("JOIN epis ON epis.id = entregas_epi.epi_id").
		Group("epis.id, epis.nome").
		Order("total DESC, epis.nome ASC").
		Limit(limite).
		Scan(&rows).Error
	return rows, err
}

func (r *entregaRepo) CreateTx(tx *gorm.DB, e *model.EntregaEpi) error {
	return tx.Create(e).Error
}

func (r *entregaRepo) FinalizarTx(tx *gorm.DB, id uint, campos map[string]interface{}) (int64, error) {
	res := tx.Model(&model.EntregaEpi{}).
		Where("id = ? AND status = ?", id, model.StatusEntregue).
		Updates(campos)
	return res.RowsAffected, res.Error
}

func (r *entregaRepo) DeleteByEpiTx(tx *gorm.DB, epiID uint) error {
	return tx.Where("epi_id = ?", epiID).Delete(&model.EntregaEpi{}).Error
}

func (r *entregaRepo) DeleteByFuncionarioTx(tx *gorm.DB, funcionarioID uint) error {
	return tx.Where("funcionario_id = ?", funcionarioID).Delete(&model.EntregaEpi{}).Error
}
