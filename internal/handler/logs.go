package handler

import (
	"net/http"

	"epicontrol/internal/dto"
	"epicontrol/internal/service"

	"github.com/gin-gonic/gin"
)

type LogsHandler struct{ svc service.AtividadeService }

func NewLogsHandler(svc service.AtividadeService) *LogsHandler { return &LogsHandler{svc: svc} }

func (h *LogsHandler) Listar(c *gin.Context) {
	var filter dto.LogFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
