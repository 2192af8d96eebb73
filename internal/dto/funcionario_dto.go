package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CadastrarFuncionarioRequest struct {
	Nome         string `json:"nome"          validate:"required,min=2,max=120"`
	Matricula    string `json:"matricula"     validate:"required,max=40"`
	Setor        string `json:"setor"         validate:"required,max=80"`
	DataAdmissao string `json:"data_admissao" validate:"required"` // YYYY-MM-DD or DD/MM/YYYY

	// SenhaValidacao is optional; it can be defined later.
	SenhaValidacao string `json:"senha_validacao"`
}

type EditarFuncionarioRequest struct {
	Nome         *string `json:"nome"          validate:"omitempty,min=2,max=120"`
	Matricula    *string `json:"matricula"     validate:"omitempty,min=1,max=40"`
	Setor        *string `json:"setor"         validate:"omitempty,max=80"`
	DataAdmissao *string `json:"data_admissao"`
}

type DefinirSenhaRequest struct {
	Senha string `json:"senha" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FuncionarioResponse struct {
	ID           uint    `json:"id"`
	Nome         string  `json:"nome"`
	Matricula    string  `json:"matricula"`
	Setor        string  `json:"setor"`
	DataAdmissao *string `json:"data_admissao"` // YYYY-MM-DD
	PossuiSenha  bool    `json:"possui_senha"`
}
