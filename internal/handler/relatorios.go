package handler

import (
	"fmt"
	"net/http"
	"time"

	"epicontrol/internal/dto"
	"epicontrol/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Dashboard godoc
// @Summary Indicadores do painel
// @Tags relatorios
// @Produce json
// @Param data_inicio query string false "YYYY-MM-DD ou DD/MM/YYYY"
// @Param data_fim query string false "YYYY-MM-DD ou DD/MM/YYYY"
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/dashboard [get]
func (h *RelatoriosHandler) Dashboard(c *gin.Context) {
	var filter dto.PeriodoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Dashboard(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RelatoriosHandler) FichaEpi(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var filter dto.PeriodoFilter
	if !bindQuery(c, &filter) {
		return
	}
	pdf, err := h.svc.FichaEpi(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=ficha_epi_%d.pdf", id))
	c.Data(http.StatusOK, contentTypePDF, pdf)
}

func (h *RelatoriosHandler) Movimentacao(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pdf, err := h.svc.Movimentacao(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=movimentacao_%d.pdf", id))
	c.Data(http.StatusOK, contentTypePDF, pdf)
}

func (h *RelatoriosHandler) ExportarEntregas(c *gin.Context) {
	var filter dto.EntregaFilter
	if !bindQuery(c, &filter) {
		return
	}
	xlsx, err := h.svc.ExportarEntregas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	nome := fmt.Sprintf("entregas_%s.xlsx", time.Now().Format("20060102_1504"))
	c.Header("Content-Disposition", "attachment; filename="+nome)
	c.Data(http.StatusOK, contentTypeXLSX, xlsx)
}
