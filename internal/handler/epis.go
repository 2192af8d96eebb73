package handler

import (
	"net/http"
	"strconv"
	"time"

	"epicontrol/internal/apierror"
	"epicontrol/internal/dto"
	"epicontrol/internal/service"

	"github.com/gin-gonic/gin"
)

type EpisHandler struct {
	svc service.EstoqueService
	loc *time.Location
}

func NewEpisHandler(svc service.EstoqueService, loc *time.Location) *EpisHandler {
	return &EpisHandler{svc: svc, loc: loc}
}

// Cadastrar godoc
// @Summary Cadastra um EPI
// @Tags epis
// @Accept json
// @Produce json
// @Param body body dto.CadastrarEpiRequest true "EPI"
// @Success 201 {object} dto.EpiResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/epis [post]
func (h *EpisHandler) Cadastrar(c *gin.Context) {
	var req dto.CadastrarEpiRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cadastrar(c.Request.Context(), atorFromContext(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EpisHandler) Listar(c *gin.Context) {
	var filter dto.EpiFilter
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

func (h *EpisHandler) Obter(c *gin.Context) {
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

func (h *EpisHandler) Editar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.EditarEpiRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Editar(c.Request.Context(), atorFromContext(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EpisHandler) Remover(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Remover(c.Request.Context(), atorFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EpisHandler) Historico(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Historico(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Criticos accepts an optional ?limite=N; the configured threshold applies otherwise.
func (h *EpisHandler) Criticos(c *gin.Context) {
	limite := 0
	if v := c.Query("limite"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, apierror.Com(apierror.CodigoRequisicaoInvalida, "limite inválido"))
			return
		}
		limite = n
	}
	resp, err := h.svc.ListarCriticos(c.Request.Context(), limite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EpisHandler) Vencidos(c *gin.Context) {
	resp, err := h.svc.ListarVencidos(c.Request.Context(), time.Now().In(h.loc))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
