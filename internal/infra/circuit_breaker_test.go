package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errFalha = errors.New("falha")

func novoBreaker(agora *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: 10 * time.Second})
	cb.now = func() time.Time { return *agora }
	return cb
}

func TestCircuitBreaker_AbreAposFalhasConsecutivas(t *testing.T) {
	agora := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	cb := novoBreaker(&agora)

	assert.ErrorIs(t, cb.Execute(func() error { return errFalha }), errFalha)
	assert.Equal(t, CBClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return errFalha }), errFalha)
	assert.Equal(t, CBOpen, cb.State())

	chamado := false
	err := cb.Execute(func() error { chamado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, chamado)
}

func TestCircuitBreaker_SucessoZeraContagem(t *testing.T) {
	agora := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	cb := novoBreaker(&agora)

	_ = cb.Execute(func() error { return errFalha })
	assert.NoError(t, cb.Execute(func() error { return nil }))
	_ = cb.Execute(func() error { return errFalha })
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_MeioAberto(t *testing.T) {
	agora := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	cb := novoBreaker(&agora)
	_ = cb.Execute(func() error { return errFalha })
	_ = cb.Execute(func() error { return errFalha })

	agora = agora.Add(10 * time.Second)
	assert.Equal(t, CBHalfOpen, cb.State())

	// a failed probe reopens immediately
	_ = cb.Execute(func() error { return errFalha })
	assert.Equal(t, CBOpen, cb.State())

	agora = agora.Add(10 * time.Second)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCBState_String(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
	assert.Equal(t, "unknown", CBState(9).String())
}
