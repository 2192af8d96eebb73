package dto

import "time"

type LogFilter struct {
	Busca      string `form:"busca"`
	DataInicio string `form:"data_inicio"`
	DataFim    string `form:"data_fim"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type LogResponse struct {
	ID       uint      `json:"id"`
	Usuario  string    `json:"usuario"`
	Acao     string    `json:"acao"`
	DataHora time.Time `json:"data_hora"`
}

type LogListResponse struct {
	Data       []LogResponse `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}
