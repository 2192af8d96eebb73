package model

import "time"

// History actions.
const (
	AcaoCadastro = "Cadastro"
	AcaoAjuste   = "Ajuste de Estoque"
	AcaoEntrega  = "Entrega"
	AcaoExclusao = "Exclusão"
)

// HistoricoEpi is an append-only record of a stock-affecting action.
// Quantidade is signed for adjustments, the raw amount for registrations and
// deliveries, and zero for deletions.
type HistoricoEpi struct {
	ID         uint      `gorm:"primaryKey"`
	EpiID      uint      `gorm:"not null;index"`
	Data       time.Time `gorm:"not null"`
	Acao       string    `gorm:"type:varchar(50);not null"`
	Quantidade int       `gorm:"not null"`
	Usuario    string

	Epi *Epi `gorm:"foreignKey:EpiID;constraint:OnDelete:CASCADE"`
}

func (HistoricoEpi) TableName() string { return "historico_epi" }
