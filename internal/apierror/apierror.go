// Package apierror holds the JSON envelopes of every 4xx/5xx response.
// Clients branch on Codigo; Detail is human-readable Portuguese text.
package apierror

// Stable error codes. They mirror the service sentinels one to one.
const (
	CodigoValidacao           = "validacao"
	CodigoNaoEncontrado       = "nao_encontrado"
	CodigoSenhaInvalida       = "senha_invalida"
	CodigoEntregaFinalizada   = "entrega_finalizada"
	CodigoEstoqueInsuficiente = "estoque_insuficiente"
	CodigoQuantidadeInvalida  = "quantidade_invalida"
	CodigoConflito            = "conflito"
	CodigoCredenciais         = "credenciais"
	CodigoNaoAutenticado      = "nao_autenticado"
	CodigoAcessoNegado        = "acesso_negado"
	CodigoLimiteRequisicoes   = "limite_requisicoes"
	CodigoRequisicaoInvalida  = "requisicao_invalida"
	CodigoInterno             = "interno"
)

type APIError struct {
	Codigo string `json:"codigo,omitempty"`
	Detail string `json:"detail"`
}

// New builds an envelope without a code, for messages no client branches on.
func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func Com(codigo, msg string) *APIError {
	return &APIError{Codigo: codigo, Detail: msg}
}

// ValidationError maps each offending field to the validator tag it failed.
type ValidationError struct {
	Codigo string            `json:"codigo"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Codigo: CodigoValidacao, Detail: "Erro de validação", Fields: fields}
}
