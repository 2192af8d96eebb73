package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CadastrarEpiRequest struct {
	Nome          string `json:"nome"           validate:"required,min=1,max=120"`
	CodigoProduto string `json:"codigo_produto" validate:"max=60"`
	NumeroCA      string `json:"numero_ca"      validate:"max=30"`
	ValidadeCA    string `json:"validade_ca"    validate:"required"` // DD/MM/YYYY
	Quantidade    int    `json:"quantidade"     validate:"min=0"`
	Observacao    string `json:"observacao"`
}

// EditarEpiRequest only changes the fields that are present.
type EditarEpiRequest struct {
	Nome          *string `json:"nome"           validate:"omitempty,min=1,max=120"`
	CodigoProduto *string `json:"codigo_produto" validate:"omitempty,max=60"`
	NumeroCA      *string `json:"numero_ca"      validate:"omitempty,max=30"`
	ValidadeCA    *string `json:"validade_ca"`
	Quantidade    *int    `json:"quantidade"`
	Observacao    *string `json:"observacao"`
}

type EpiFilter struct {
	Nome string `form:"nome"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EpiResponse struct {
	ID            uint   `json:"id"`
	Nome          string `json:"nome"`
	CodigoProduto string `json:"codigo_produto"`
	NumeroCA      string `json:"numero_ca"`
	ValidadeCA    string `json:"validade_ca"`
	Quantidade    int    `json:"quantidade"`
	Observacao    string `json:"observacao"`
	Critico       bool   `json:"critico"`
}

type HistoricoResponse struct {
	ID         uint      `json:"id"`
	EpiID      uint      `json:"epi_id"`
	Data       time.Time `json:"data"`
	Acao       string    `json:"acao"`
	Quantidade int       `json:"quantidade"`
	Usuario    string    `json:"usuario"`
}
