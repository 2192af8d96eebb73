package model

import "time"

// Epi is a PPE item definition with its on-hand quantity.
// ValidadeCA keeps the certificate expiry as typed by the operator (DD/MM/YYYY).
type Epi struct {
	ID            uint   `gorm:"primaryKey"`
	Nome          string `gorm:"index;not null"`
	CodigoProduto string `gorm:"column:codigo_produto"`
	NumeroCA      string `gorm:"column:numero_ca"`
	ValidadeCA    string `gorm:"column:validade_ca"`
	Quantidade    int    `gorm:"not null;default:0"`
	Observacao    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Epi) TableName() string { return "epis" }
