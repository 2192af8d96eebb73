package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Login string `json:"login" validate:"required,min=1"`
	Senha string `json:"senha" validate:"required,min=1"`
}

type CriarUsuarioRequest struct {
	Nome  string `json:"nome"  validate:"required,min=2,max=100"`
	Login string `json:"login" validate:"required,min=1,max=80"`
	Senha string `json:"senha" validate:"required,min=4"`
	Role  string `json:"role"  validate:"required,oneof=admin supervisor user"`
}

type AtualizarUsuarioRequest struct {
	Nome  string `json:"nome"  validate:"omitempty,min=2,max=100"`
	Login string `json:"login" validate:"omitempty,min=1,max=80"`
	Role  string `json:"role"  validate:"omitempty,oneof=admin supervisor user"`
	Senha string `json:"senha" validate:"omitempty,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID    uint   `json:"id"`
	Nome  string `json:"nome"`
	Login string `json:"login"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"` // seconds
	Usuario     UsuarioResponse `json:"usuario"`
}
