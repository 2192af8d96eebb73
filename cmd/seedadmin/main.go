// cmd/seedadmin creates or resets a user with the given role.
// Uso: go run ./cmd/seedadmin -login admin -senha nova-senha
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"epicontrol/internal/config"
	"epicontrol/internal/infra"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	login := flag.String("login", "admin", "login do usuário")
	senha := flag.String("senha", "", "nova senha (obrigatória)")
	nome := flag.String("nome", "Administrador", "nome exibido")
	role := flag.String("role", model.RoleAdmin, "admin | supervisor | user")
	flag.Parse()

	if *senha == "" {
		log.Fatal().Msg("informe -senha")
	}
	switch *role {
	case model.RoleAdmin, model.RoleSupervisor, model.RoleUser:
	default:
		log.Fatal().Str("role", *role).Msg("role inválida")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao carregar configuração")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao abrir o banco de dados")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*senha), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	ctx := context.Background()
	repo := repository.NewUsuarioRepository(db)
	user, err := repo.FindByLogin(ctx, *login)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.Usuario{Login: *login, Nome: *nome, Role: *role, SenhaHash: string(hash)}
		err = repo.Create(ctx, user)
	case err == nil:
		user.Nome, user.Role, user.SenhaHash = *nome, *role, string(hash)
		err = repo.Update(ctx, user)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("falha ao gravar usuário")
	}
	fmt.Printf("Usuário '%s' (%s) criado/atualizado\n", user.Login, user.Role)
}
