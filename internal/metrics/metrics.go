// Package metrics holds the domain Prometheus collectors. HTTP request
// metrics live in the middleware package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Movement kinds used as the "tipo" label.
const (
	TipoEntrega   = "entrega"
	TipoDevolucao = "devolucao"
	TipoDescarte  = "descarte"
)

var (
	// MovimentacoesTotal counts committed ledger operations per kind.
	MovimentacoesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "epicontrol_movimentacoes_total",
			Help: "Total de entregas, devoluções e descartes confirmados",
		},
		[]string{"tipo"},
	)

	// UnidadesMovimentadasTotal sums the quantities moved per kind.
	UnidadesMovimentadasTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "epicontrol_unidades_movimentadas_total",
			Help: "Unidades de EPI movimentadas por tipo de operação",
		},
		[]string{"tipo"},
	)

	// EstoqueInsuficienteTotal counts deliveries refused for lack of stock.
	EstoqueInsuficienteTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epicontrol_estoque_insuficiente_total",
		Help: "Entregas recusadas por estoque insuficiente",
	})

	DashboardCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epicontrol_dashboard_cache_hits_total",
		Help: "Leituras do dashboard servidas pelo cache",
	})
	DashboardCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epicontrol_dashboard_cache_misses_total",
		Help: "Leituras do dashboard calculadas no banco",
	})
)

// Movimentacao records one committed ledger operation of qtd units.
func Movimentacao(tipo string, qtd int) {
	MovimentacoesTotal.WithLabelValues(tipo).Inc()
	UnidadesMovimentadasTotal.WithLabelValues(tipo).Add(float64(qtd))
}
