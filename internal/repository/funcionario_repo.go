package repository

import (
	"context"

	"epicontrol/internal/model"

	"gorm.io/gorm"
)

type FuncionarioRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Funcionario, error)
	List(ctx context.Context) ([]model.Funcionario, error)
	Count(ctx context.Context) (int64, error)

	CreateTx(tx *gorm.DB, f *model.Funcionario) error
	FindByIDTx(tx *gorm.DB, id uint) (*model.Funcionario, error)
	// ExistsMatriculaTx reports whether another employee already uses matricula.
	ExistsMatriculaTx(tx *gorm.DB, matricula string, exceptID uint) (bool, error)
	UpdateTx(tx *gorm.DB, f *model.Funcionario) error
	DeleteTx(tx *gorm.DB, id uint) error

	DB() *gorm.DB
}

type funcionarioRepo struct{ db *gorm.DB }

func NewFuncionarioRepository(db *gorm.DB) FuncionarioRepository {
	return &funcionarioRepo{db: db}
}

func (r *funcionarioRepo) FindByID(ctx context.Context, id uint) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *funcionarioRepo) List(ctx context.Context) ([]model.Funcionario, error) {
	var funcionarios []model.Funcionario
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&funcionarios).Error
	return funcionarios, err
}

func (r *funcionarioRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Funcionario{}).Count(&n).Error
	return n, err
}

func (r *funcionarioRepo) CreateTx(tx *gorm.DB, f *model.Funcionario) error {
	return tx.Create(f).Error
}

func (r *funcionarioRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Funcionario, error) {
	var f model.Funcionario
	err := tx.First(&f, id).Error
	return &f, err
}

func (r *funcionarioRepo) ExistsMatriculaTx(tx *gorm.DB, matricula string, exceptID uint) (bool, error) {
	var n int64
	err := tx.Model(&model.Funcionario{}).
		Where("matricula = ? AND id <> ?", matricula, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *funcionarioRepo) UpdateTx(tx *gorm.DB, f *model.Funcionario) error {
	return tx.Save(f).Error
}

func (r *funcionarioRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Funcionario{}, id).Error
}

func (r *funcionarioRepo) DB() *gorm.DB { return r.db }
