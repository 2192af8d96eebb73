package dto

// PeriodoFilter is the optional inclusive date range of reports.
// Both bounds must parse (YYYY-MM-DD or DD/MM/YYYY), otherwise it is ignored.
type PeriodoFilter struct {
	DataInicio string `form:"data_inicio"`
	DataFim    string `form:"data_fim"`
}

type SerieItem struct {
	Nome  string `json:"nome"`
	Valor int64  `json:"valor"`
}

type DashboardResponse struct {
	TotalEpis         int64       `json:"total_epis"`
	TotalFuncionarios int64       `json:"total_funcionarios"`
	TotalUsuarios     int64       `json:"total_usuarios"`
	TotalCriticos     int         `json:"total_criticos"`
	Criticos          []SerieItem `json:"criticos"`
	TotalVencidos     int         `json:"total_vencidos"`
	EntregasMes       int64       `json:"entregas_mes"`
	TotalEntregas     int64       `json:"total_entregas"`
	Pendencias        int64       `json:"pendencias"`
	EstoquePorEpi     []SerieItem `json:"estoque_por_epi"`
	EntregasPorColab  []SerieItem `json:"entregas_por_colaborador"`
	EpisMaisEntregues []SerieItem `json:"epis_mais_entregues"`
	FiltroAtivo       bool        `json:"filtro_ativo"`
	DataInicio        string      `json:"data_inicio,omitempty"`
	DataFim           string      `json:"data_fim,omitempty"`
}
