package service

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map them to HTTP status codes with errors.Is;
// detail is attached with fmt.Errorf("%w: ...").
var (
	ErrValidacao           = errors.New("dados inválidos")
	ErrNaoEncontrado       = errors.New("registro não encontrado")
	ErrSenhaInvalida       = errors.New("senha de validação incorreta")
	ErrEntregaFinalizada   = errors.New("entrega já finalizada")
	ErrEstoqueInsuficiente = errors.New("estoque insuficiente")
	ErrQuantidadeInvalida  = errors.New("quantidade inválida")
	ErrConflito            = errors.New("registro duplicado")
	ErrCredenciais         = errors.New("usuário ou senha inválidos")
)

func wrap(err error, detalhe string) error {
	return fmt.Errorf("%w: %s", err, detalhe)
}
