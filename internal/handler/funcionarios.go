package handler

import (
	"net/http"

	"epicontrol/internal/dto"
	"epicontrol/internal/service"

	"github.com/gin-gonic/gin"
)

type FuncionariosHandler struct{ svc service.FuncionarioService }

func NewFuncionariosHandler(svc service.FuncionarioService) *FuncionariosHandler {
	return &FuncionariosHandler{svc: svc}
}

func (h *FuncionariosHandler) Cadastrar(c *gin.Context) {
	var req dto.CadastrarFuncionarioRequest
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

func (h *FuncionariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FuncionariosHandler) Obter(c *gin.Context) {
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

func (h *FuncionariosHandler) Editar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.EditarFuncionarioRequest
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

func (h *FuncionariosHandler) DefinirSenha(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.DefinirSenhaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.DefinirSenha(c.Request.Context(), atorFromContext(c), id, req.Senha); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FuncionariosHandler) Remover(c *gin.Context) {
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
