package model

import "time"

// Delivery statuses. devolvido and descartado are terminal.
const (
	StatusEntregue   = "entregue"
	StatusDevolvido  = "devolvido"
	StatusDescartado = "descartado"
)

// EntregaEpi records a quantity of an Epi handed to a Funcionario.
//
// Quantidade is the externally visible amount and is overwritten on every
// return or discard with the amount acted upon. QuantidadeEntregue keeps the
// amount originally delivered and never changes.
type EntregaEpi struct {
	ID                 uint       `gorm:"primaryKey"`
	FuncionarioID      uint       `gorm:"not null;index"`
	EpiID              uint       `gorm:"not null;index"`
	Quantidade         int        `gorm:"not null"`
	QuantidadeEntregue int        `gorm:"not null"`
	DataEntrega        time.Time  `gorm:"not null;index"`
	ValidadeEntrega    *time.Time `gorm:"type:date"`
	EntreguePor        string
	Status             string `gorm:"type:varchar(20);not null;default:'entregue';index"`
	Observacao         *string
	DataDevolucao      *time.Time
	DataDescarte       *time.Time

	Funcionario *Funcionario `gorm:"foreignKey:FuncionarioID;constraint:OnDelete:CASCADE"`
	Epi         *Epi         `gorm:"foreignKey:EpiID;constraint:OnDelete:CASCADE"`
}

func (EntregaEpi) TableName() string { return "entregas_epi" }

// Finalizada reports whether the delivery reached a terminal status.
func (e *EntregaEpi) Finalizada() bool {
	return e.Status == StatusDevolvido || e.Status == StatusDescartado
}
