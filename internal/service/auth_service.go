package service

import (
	"context"
	"strings"
	"time"

	"epicontrol/internal/config"
	"epicontrol/internal/dto"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// LoginAdminPadrao is the bootstrap account; it can never be removed.
const LoginAdminPadrao = "admin"

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, ator Ator) error
	GarantirAdminPadrao(ctx context.Context) error
	CriarUsuario(ctx context.Context, ator Ator, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	AtualizarUsuario(ctx context.Context, ator Ator, id uint, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	RemoverUsuario(ctx context.Context, ator Ator, id uint) error
}

type authService struct {
	repo      repository.UsuarioRepository
	atividade AtividadeService
	cfg       *config.Config
	now       func() time.Time
}

func NewAuthService(repo repository.UsuarioRepository, atividade AtividadeService, cfg *config.Config) AuthService {
	return &authService{repo: repo, atividade: atividade, cfg: cfg, now: time.Now}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		return nil, ErrCredenciais
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, ErrCredenciais
	}

	token, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	if err := s.atividade.Registrar(ctx, Ator{Nome: user.Nome, Role: user.Role}, "Realizou login no sistema"); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Usuario:     usuarioToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, ator Ator) error {
	return s.atividade.Registrar(ctx, ator, "Saiu do sistema")
}

// GarantirAdminPadrao creates the bootstrap admin when the user table is empty.
func (s *authService) GarantirAdminPadrao(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminDefaultPassword), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, &model.Usuario{
		Nome:      "Administrador",
		Login:     LoginAdminPadrao,
		SenhaHash: string(hash),
		Role:      model.RoleAdmin,
	}); err != nil {
		return err
	}
	log.Warn().Str("login", LoginAdminPadrao).Msg("usuário administrador padrão criado, altere a senha")
	return nil
}

func (s *authService) CriarUsuario(ctx context.Context, ator Ator, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	login := strings.TrimSpace(req.Login)
	if existe, err := s.repo.ExistsLogin(ctx, login, 0); err != nil {
		return nil, err
	} else if existe {
		return nil, wrap(ErrConflito, "login "+login+" já existe")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Nome:      strings.TrimSpace(req.Nome),
		Login:     login,
		SenhaHash: string(hash),
		Role:      req.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.atividade.Registrar(ctx, ator, "Cadastrou usuário: "+user.Login); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) AtualizarUsuario(ctx context.Context, ator Ator, id uint, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, naoEncontrado(err, "usuário")
	}
	if req.Nome != "" {
		user.Nome = strings.TrimSpace(req.Nome)
	}
	if login := strings.TrimSpace(req.Login); login != "" && login != user.Login {
		if user.Login == LoginAdminPadrao {
			return nil, wrap(ErrValidacao, "o login do administrador padrão não pode ser alterado")
		}
		existe, err := s.repo.ExistsLogin(ctx, login, user.ID)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, wrap(ErrConflito, "login "+login+" já existe")
		}
		user.Login = login
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Senha != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.SenhaHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.atividade.Registrar(ctx, ator, "Editou usuário: "+user.Login); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) RemoverUsuario(ctx context.Context, ator Ator, id uint) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return naoEncontrado(err, "usuário")
	}
	if user.Login == LoginAdminPadrao {
		return wrap(ErrValidacao, "o administrador padrão não pode ser excluído")
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return err
	}
	return s.atividade.Registrar(ctx, ator, "Excluiu usuário: "+user.Login)
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"nome":    user.Nome,
		"login":   user.Login,
		"role":    user.Role,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{ID: u.ID, Nome: u.Nome, Login: u.Login, Role: u.Role}
}

