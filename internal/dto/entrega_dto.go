package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type EntregarRequest struct {
	FuncionarioID   uint    `json:"funcionario_id"   validate:"required"`
	EpiID           uint    `json:"epi_id"           validate:"required"`
	Quantidade      int     `json:"quantidade"`
	SenhaValidacao  string  `json:"senha_validacao"`
	ValidadeEntrega string  `json:"validade_entrega"` // YYYY-MM-DD, optional
	Observacao      *string `json:"observacao"`
}

// MovimentarRequest carries the amount of a return or discard.
type MovimentarRequest struct {
	Quantidade int `json:"quantidade"`
}

type EntregaFilter struct {
	Colaborador   string `form:"colaborador"`
	Epi           string `form:"epi"`
	Status        string `form:"status"        validate:"omitempty,oneof=entregue devolvido descartado"`
	DataInicio    string `form:"data_inicio"`
	DataFim       string `form:"data_fim"`
	SomenteAtivas bool   `form:"somente_ativas"`
	Page          int    `form:"page,default=1"   validate:"min=1"`
	Limit         int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EntregaResponse struct {
	ID                 uint       `json:"id"`
	FuncionarioID      uint       `json:"funcionario_id"`
	Funcionario        string     `json:"funcionario"`
	Matricula          string     `json:"matricula"`
	EpiID              uint       `json:"epi_id"`
	Epi                string     `json:"epi"`
	NumeroCA           string     `json:"numero_ca"`
	Quantidade         int        `json:"quantidade"`
	QuantidadeEntregue int        `json:"quantidade_entregue"`
	Status             string     `json:"status"`
	DataEntrega        time.Time  `json:"data_entrega"`
	ValidadeEntrega    *string    `json:"validade_entrega"`
	EntreguePor        string     `json:"entregue_por"`
	Observacao         *string    `json:"observacao"`
	DataDevolucao      *time.Time `json:"data_devolucao"`
	DataDescarte       *time.Time `json:"data_descarte"`
}

type EntregaListResponse struct {
	Data       []EntregaResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
