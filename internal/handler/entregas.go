package handler

import (
	"context"
	"net/http"

	"epicontrol/internal/dto"
	"epicontrol/internal/service"

	"github.com/gin-gonic/gin"
)

type EntregasHandler struct{ svc service.EntregaService }

func NewEntregasHandler(svc service.EntregaService) *EntregasHandler {
	return &EntregasHandler{svc: svc}
}

// Entregar godoc
// @Summary Entrega EPI a um funcionário
// @Description Exige a senha de validação do funcionário e estoque suficiente.
// @Tags entregas
// @Accept json
// @Produce json
// @Param body body dto.EntregarRequest true "Entrega"
// @Success 201 {object} dto.EntregaResponse
// @Failure 403 {object} apierror.APIError "senha de validação incorreta"
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError "estoque insuficiente"
// @Router /v1/entregas [post]
func (h *EntregasHandler) Entregar(c *gin.Context) {
	var req dto.EntregarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Entregar(c.Request.Context(), atorFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EntregasHandler) Listar(c *gin.Context) {
	var filter dto.EntregaFilter
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

func (h *EntregasHandler) Obter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Devolver godoc
// @Summary Devolução parcial ou total de uma entrega
// @Tags entregas
// @Accept json
// @Produce json
// @Param id path int true "ID da entrega"
// @Param body body dto.MovimentarRequest true "Quantidade"
// @Success 200 {object} dto.EntregaResponse
// @Failure 400 {object} apierror.APIError "quantidade inválida"
// @Failure 409 {object} apierror.APIError "entrega já finalizada"
// @Router /v1/entregas/{id}/devolucao [post]
func (h *EntregasHandler) Devolver(c *gin.Context) {
	h.movimentar(c, h.svc.Devolver)
}

func (h *EntregasHandler) Descartar(c *gin.Context) {
	h.movimentar(c, h.svc.Descartar)
}

type movimentacaoFn func(ctx context.Context, ator service.Ator, id uint, quantidade int) (*dto.EntregaResponse, error)

func (h *EntregasHandler) movimentar(c *gin.Context, fn movimentacaoFn) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.MovimentarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := fn(c.Request.Context(), atorFromContext(c), id, req.Quantidade)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
