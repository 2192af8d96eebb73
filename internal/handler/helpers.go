package handler

import (
	"errors"
	"net/http"
	"strconv"

	"epicontrol/internal/apierror"
	"epicontrol/internal/middleware"
	"epicontrol/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Com(apierror.CodigoRequisicaoInvalida, "JSON inválido: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Com(apierror.CodigoRequisicaoInvalida, "Parâmetros inválidos: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.Com(apierror.CodigoRequisicaoInvalida, err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.Com(apierror.CodigoRequisicaoInvalida, "ID inválido"))
		return 0, false
	}
	return uint(id), true
}

// atorFromContext builds the acting user from the JWT claims.
func atorFromContext(c *gin.Context) service.Ator {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return service.Ator{}
	}
	return service.Ator{Nome: claims.Nome, Role: claims.Role}
}

type mapeamento struct {
	sentinela error
	status    int
	codigo    string
}

var errosDominio = []mapeamento{
	{service.ErrValidacao, http.StatusUnprocessableEntity, apierror.CodigoValidacao},
	{service.ErrNaoEncontrado, http.StatusNotFound, apierror.CodigoNaoEncontrado},
	{service.ErrSenhaInvalida, http.StatusForbidden, apierror.CodigoSenhaInvalida},
	{service.ErrEntregaFinalizada, http.StatusConflict, apierror.CodigoEntregaFinalizada},
	{service.ErrEstoqueInsuficiente, http.StatusConflict, apierror.CodigoEstoqueInsuficiente},
	{service.ErrConflito, http.StatusConflict, apierror.CodigoConflito},
	{service.ErrQuantidadeInvalida, http.StatusBadRequest, apierror.CodigoQuantidadeInvalida},
	{service.ErrCredenciais, http.StatusUnauthorized, apierror.CodigoCredenciais},
}

// respondError maps domain errors to status codes. Anything unknown is
// pushed to the ErrorHandler middleware, which logs it and answers 500.
func respondError(c *gin.Context, err error) {
	for _, m := range errosDominio {
		if errors.Is(err, m.sentinela) {
			c.JSON(m.status, apierror.Com(m.codigo, err.Error()))
			return
		}
	}
	_ = c.Error(err)
}
