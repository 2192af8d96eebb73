package model

import "time"

// Funcionario is an employee that can receive PPE deliveries.
// SenhaValidacaoHash is the bcrypt hash of the delivery validation secret;
// empty means no secret was ever defined.
type Funcionario struct {
	ID                 uint   `gorm:"primaryKey"`
	Nome               string `gorm:"index;not null"`
	Matricula          string `gorm:"uniqueIndex;not null"`
	Setor              string
	DataAdmissao       *time.Time `gorm:"type:date"`
	SenhaValidacaoHash string     `gorm:"column:senha_validacao_hash"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Funcionario) TableName() string { return "funcionarios" }
