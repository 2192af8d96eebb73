package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"epicontrol/internal/dto"
	"epicontrol/internal/infra"
	"epicontrol/internal/metrics"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"github.com/rs/zerolog/log"
)

const topEpisLimite = 5

// DashboardCache stores serialized dashboard summaries. A nil cache disables
// caching; staleness is bounded by the implementation's TTL only.
type DashboardCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
}

// RelatorioService serves read-only aggregates and the generated documents.
type RelatorioService interface {
	Dashboard(ctx context.Context, filter dto.PeriodoFilter) (*dto.DashboardResponse, error)
	FichaEpi(ctx context.Context, funcionarioID uint, filter dto.PeriodoFilter) ([]byte, error)
	Movimentacao(ctx context.Context, entregaID uint) ([]byte, error)
	ExportarEntregas(ctx context.Context, filter dto.EntregaFilter) ([]byte, error)
}

type relatorioService struct {
	epiRepo         repository.EpiRepository
	funcionarioRepo repository.FuncionarioRepository
	entregaRepo     repository.EntregaRepository
	usuarioRepo     repository.UsuarioRepository
	cache           DashboardCache
	empresa         infra.Empresa
	limite          int
	loc             *time.Location
	now             func() time.Time
}

type RelatorioDeps struct {
	EpiRepo         repository.EpiRepository
	FuncionarioRepo repository.FuncionarioRepository
	EntregaRepo     repository.EntregaRepository
	UsuarioRepo     repository.UsuarioRepository
	Cache           DashboardCache
	Empresa         infra.Empresa
	LimiteCritico   int
	Location        *time.Location
}

func NewRelatorioService(d RelatorioDeps) RelatorioService {
	if d.LimiteCritico <= 0 {
		d.LimiteCritico = 10
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	return &relatorioService{
		epiRepo:         d.EpiRepo,
		funcionarioRepo: d.FuncionarioRepo,
		entregaRepo:     d.EntregaRepo,
		usuarioRepo:     d.UsuarioRepo,
		cache:           d.Cache,
		empresa:         d.Empresa,
		limite:          d.LimiteCritico,
		loc:             d.Location,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// ── Dashboard ─────────────────────────────────────────────────────────────────
// Totals, critical stock, expired certificates and the month counter ignore
// the period. Delivery totals, pending items and both rankings honour it.

func (s *relatorioService) Dashboard(ctx context.Context, filter dto.PeriodoFilter) (*dto.DashboardResponse, error) {
	periodo := ParsePeriodo(filter.DataInicio, filter.DataFim, s.loc)
	hoje := s.now().In(s.loc)

	key := hoje.Format(layoutISO)
	if periodo != nil {
		key += ":" + periodo.Inicio.Format(time.RFC3339) + ":" + periodo.Fim.Format(time.RFC3339)
	}
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var resp dto.DashboardResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				metrics.DashboardCacheHits.Inc()
				return &resp, nil
			}
		}
		metrics.DashboardCacheMisses.Inc()
	}

	resp, err := s.calcularDashboard(ctx, periodo, hoje)
	if err != nil {
		return nil, err
	}
	if periodo != nil {
		resp.FiltroAtivo = true
		resp.DataInicio = periodo.Inicio.In(s.loc).Format(layoutISO)
		resp.DataFim = periodo.Fim.In(s.loc).Format(layoutISO)
	}

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, key, data)
		} else {
			log.Warn().Err(err).Msg("dashboard: falha ao serializar para o cache")
		}
	}
	return resp, nil
}

func (s *relatorioService) calcularDashboard(ctx context.Context, periodo *repository.Periodo, hoje time.Time) (*dto.DashboardResponse, error) {
	var resp dto.DashboardResponse
	var err error

	if resp.TotalEpis, err = s.epiRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalFuncionarios, err = s.funcionarioRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalUsuarios, err = s.usuarioRepo.Count(ctx); err != nil {
		return nil, err
	}

	epis, err := s.epiRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	resp.Criticos = make([]dto.SerieItem, 0)
	resp.EstoquePorEpi = make([]dto.SerieItem, 0, len(epis))
	for _, e := range epis {
		resp.EstoquePorEpi = append(resp.EstoquePorEpi, dto.SerieItem{Nome: e.Nome, Valor: int64(e.Quantidade)})
		if e.Quantidade <= s.limite {
			resp.Criticos = append(resp.Criticos, dto.SerieItem{Nome: e.Nome, Valor: int64(e.Quantidade)})
		}
		if CAVencido(e.ValidadeCA, hoje) {
			resp.TotalVencidos++
		}
	}
	resp.TotalCriticos = len(resp.Criticos)

	inicioMes := time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, s.loc).UTC()
	if resp.EntregasMes, err = s.entregaRepo.CountEntreguesDesde(ctx, inicioMes); err != nil {
		return nil, err
	}
	if resp.TotalEntregas, err = s.entregaRepo.CountEntregues(ctx, periodo); err != nil {
		return nil, err
	}
	if resp.Pendencias, err = s.entregaRepo.CountPendentes(ctx, periodo); err != nil {
		return nil, err
	}

	porFuncionario, err := s.entregaRepo.ContagemPorFuncionario(ctx, periodo)
	if err != nil {
		return nil, err
	}
	resp.EntregasPorColab = make([]dto.SerieItem, len(porFuncionario))
	for i, r := range porFuncionario {
		resp.EntregasPorColab[i] = dto.SerieItem{Nome: r.Nome, Valor: r.Total}
	}

	top, err := s.entregaRepo.TopEpis(ctx, periodo, topEpisLimite)
	if err != nil {
		return nil, err
	}
	resp.EpisMaisEntregues = make([]dto.SerieItem, len(top))
	for i, r := range top {
		resp.EpisMaisEntregues[i] = dto.SerieItem{Nome: r.Nome, Valor: r.Total}
	}
	return &resp, nil
}

// ── Documents ─────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

func tracoSeVazio(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func (s *relatorioService) local(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	v := t.In(s.loc)
	return formatarData(&v, layout)
}

func (s *relatorioService) FichaEpi(ctx context.Context, funcionarioID uint, filter dto.PeriodoFilter) ([]byte, error) {
	f, err := s.funcionarioRepo.FindByID(ctx, funcionarioID)
	if err != nil {
		return nil, naoEncontrado(err, "funcionário")
	}
	periodo := ParsePeriodo(filter.DataInicio, filter.DataFim, s.loc)
	entregas, err := s.entregaRepo.ListByFuncionario(ctx, f.ID, periodo)
	if err != nil {
		return nil, err
	}

	doc := infra.FichaEpiDoc{
		Empresa:     s.empresa,
		Colaborador: infra.Colaborador{Nome: f.Nome, Matricula: f.Matricula, Setor: f.Setor},
		Emissao:     s.now().In(s.loc),
		Linhas:      make([]infra.LinhaFicha, 0, len(entregas)),
	}
	if periodo != nil {
		doc.Periodo = fmt.Sprintf("%s a %s",
			s.local(&periodo.Inicio, layoutBR), s.local(&periodo.Fim, layoutBR))
	}
	for i := range entregas {
		e := &entregas[i]
		fim := e.DataDevolucao
		if fim == nil {
			fim = e.DataDescarte
		}
		linha := infra.LinhaFicha{
			Epi:               nomeEpi(e),
			Quantidade:        e.Quantidade,
			Entrega:           s.local(&e.DataEntrega, layoutBR),
			DevolucaoDescarte: tracoSeVazio(s.local(fim, layoutBR)),
			Status:            statusLabel(e.Status),
		}
		if e.Epi != nil {
			linha.CA = tracoSeVazio(e.Epi.NumeroCA)
		}
		doc.Linhas = append(doc.Linhas, linha)
	}
	return infra.RenderFichaEpi(doc)
}

func (s *relatorioService) Movimentacao(ctx context.Context, entregaID uint) ([]byte, error) {
	e, err := s.entregaRepo.FindByID(ctx, entregaID)
	if err != nil {
		return nil, naoEncontrado(err, "entrega")
	}

	const layoutHora = "02/01/2006 15:04"
	doc := infra.MovimentacaoDoc{
		Empresa: s.empresa,
		Emissao: s.now().In(s.loc),
	}
	if e.Funcionario != nil {
		doc.Colaborador = infra.Colaborador{Nome: e.Funcionario.Nome, Matricula: e.Funcionario.Matricula, Setor: e.Funcionario.Setor}
	}
	ca := "-"
	if e.Epi != nil {
		ca = tracoSeVazio(e.Epi.NumeroCA)
	}
	doc.Detalhes = []infra.Campo{
		{Rotulo: "EPI", Valor: nomeEpi(e)},
		{Rotulo: "CA", Valor: ca},
		{Rotulo: "Quantidade", Valor: fmt.Sprintf("%d", e.Quantidade)},
		{Rotulo: "Status", Valor: statusLabel(e.Status)},
		{Rotulo: "Entregue por", Valor: tracoSeVazio(e.EntreguePor)},
		{Rotulo: "Data da operação", Valor: s.local(&e.DataEntrega, layoutHora)},
	}
	if e.ValidadeEntrega != nil {
		doc.Detalhes = append(doc.Detalhes, infra.Campo{Rotulo: "Validade da entrega", Valor: e.ValidadeEntrega.Format(layoutBR)})
	}
	if e.Status == model.StatusDevolvido && e.DataDevolucao != nil {
		doc.Detalhes = append(doc.Detalhes, infra.Campo{Rotulo: "Data da devolução", Valor: s.local(e.DataDevolucao, layoutHora)})
	}
	if e.Status == model.StatusDescartado && e.DataDescarte != nil {
		doc.Detalhes = append(doc.Detalhes, infra.Campo{Rotulo: "Data do descarte", Valor: s.local(e.DataDescarte, layoutHora)})
	}
	return infra.RenderMovimentacao(doc)
}

func (s *relatorioService) ExportarEntregas(ctx context.Context, filter dto.EntregaFilter) ([]byte, error) {
	filtro := entregaFiltro(filter, s.loc)
	filtro.Page, filtro.Limit = 0, 0
	entregas, _, err := s.entregaRepo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}

	const layoutHora = "02/01/2006 15:04"
	linhas := make([]infra.LinhaEntrega, len(entregas))
	for i := range entregas {
		e := &entregas[i]
		fim := e.DataDevolucao
		if fim == nil {
			fim = e.DataDescarte
		}
		l := infra.LinhaEntrega{
			ID:                 e.ID,
			Funcionario:        nomeFuncionario(e),
			Epi:                nomeEpi(e),
			QuantidadeEntregue: e.QuantidadeEntregue,
			Quantidade:         e.Quantidade,
			Status:             statusLabel(e.Status),
			DataEntrega:        s.local(&e.DataEntrega, layoutHora),
			DataFinalizacao:    s.local(fim, layoutHora),
			EntreguePor:        e.EntreguePor,
		}
		if e.Funcionario != nil {
			l.Matricula = e.Funcionario.Matricula
		}
		if e.Epi != nil {
			l.CA = e.Epi.NumeroCA
		}
		linhas[i] = l
	}
	return infra.RenderEntregasXLSX(linhas)
}
