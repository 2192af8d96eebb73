package router

import (
	"time"

	"epicontrol/internal/config"
	"epicontrol/internal/handler"
	"epicontrol/internal/infra"
	"epicontrol/internal/middleware"
	"epicontrol/internal/model"
	"epicontrol/internal/repository"
	"epicontrol/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services bundles the wired services so cmd/server can run startup tasks
// (default admin) with the same instances the routes use.
type Services struct {
	Auth        service.AuthService
	Estoque     service.EstoqueService
	Funcionario service.FuncionarioService
	Entrega     service.EntregaService
	Atividade   service.AtividadeService
	Relatorio   service.RelatorioService
}

// NewServices wires repositories into services.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Services {
	loc := cfg.Location()

	// ── Repositories ─────────────────────────────────────────────────────────
	epiRepo := repository.NewEpiRepository(db)
	funcionarioRepo := repository.NewFuncionarioRepository(db)
	entregaRepo := repository.NewEntregaRepository(db)
	historicoRepo := repository.NewHistoricoRepository(db)
	logRepo := repository.NewLogRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	atividadeSvc := service.NewAtividadeService(logRepo, loc)
	historicoSvc := service.NewHistoricoService(historicoRepo)

	var cache service.DashboardCache
	if rdb != nil && cfg.DashboardCacheTTL() > 0 {
		cache = infra.NewRedisDashboardCache(rdb, cfg.DashboardCacheTTL())
	}

	return &Services{
		Auth:        service.NewAuthService(usuarioRepo, atividadeSvc, cfg),
		Estoque:     service.NewEstoqueService(epiRepo, entregaRepo, historicoRepo, historicoSvc, atividadeSvc, cfg.EstoqueCriticoLimite),
		Funcionario: service.NewFuncionarioService(funcionarioRepo, entregaRepo, atividadeSvc),
		Entrega:     service.NewEntregaService(entregaRepo, epiRepo, funcionarioRepo, historicoSvc, atividadeSvc, loc),
		Atividade:   atividadeSvc,
		Relatorio: service.NewRelatorioService(service.RelatorioDeps{
			EpiRepo:         epiRepo,
			FuncionarioRepo: funcionarioRepo,
			EntregaRepo:     entregaRepo,
			UsuarioRepo:     usuarioRepo,
			Cache:           cache,
			Empresa: infra.Empresa{
				Nome:               cfg.EmpresaNome,
				CNPJ:               cfg.EmpresaCNPJ,
				Endereco:           cfg.EmpresaEndereco,
				Telefone:           cfg.EmpresaTelefone,
				ResponsavelTecnico: cfg.ResponsavelTecnico,
			},
			LimiteCritico: cfg.EstoqueCriticoLimite,
			Location:      loc,
		}),
	}
}

// New returns a configured Gin engine serving svcs.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, svcs *Services) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(svcs.Auth)
	usuariosH := handler.NewUsuariosHandler(svcs.Auth)
	episH := handler.NewEpisHandler(svcs.Estoque, cfg.Location())
	funcionariosH := handler.NewFuncionariosHandler(svcs.Funcionario)
	entregasH := handler.NewEntregasHandler(svcs.Entrega)
	logsH := handler.NewLogsHandler(svcs.Atividade)
	relatoriosH := handler.NewRelatoriosHandler(svcs.Relatorio)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	gestao := middleware.RequireRole(model.RoleAdmin, model.RoleSupervisor)

	// Protected routes: any authenticated role unless a group says otherwise
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/dashboard", relatoriosH.Dashboard)

		epis := v1.Group("/epis")
		{
			epis.GET("", episH.Listar)
			epis.POST("", episH.Cadastrar)
			epis.GET("/criticos", episH.Criticos)
			epis.GET("/vencidos", episH.Vencidos)
			epis.GET("/:id", episH.Obter)
			epis.PUT("/:id", episH.Editar)
			epis.DELETE("/:id", episH.Remover)
			epis.GET("/:id/historico", episH.Historico)
		}

		// Ficha PDF is readable by every role; the directory itself is not
		v1.GET("/funcionarios/:id/ficha.pdf", relatoriosH.FichaEpi)
		funcs := v1.Group("/funcionarios", gestao)
		{
			funcs.GET("", funcionariosH.Listar)
			funcs.POST("", funcionariosH.Cadastrar)
			funcs.GET("/:id", funcionariosH.Obter)
			funcs.PUT("/:id", funcionariosH.Editar)
			funcs.DELETE("/:id", funcionariosH.Remover)
			funcs.POST("/:id/senha", funcionariosH.DefinirSenha)
		}

		entregas := v1.Group("/entregas")
		{
			entregas.GET("", entregasH.Listar)
			entregas.POST("", entregasH.Entregar)
			entregas.GET("/export.xlsx", relatoriosH.ExportarEntregas)
			entregas.GET("/:id", entregasH.Obter)
			entregas.POST("/:id/devolucao", entregasH.Devolver)
			entregas.POST("/:id/descarte", entregasH.Descartar)
			entregas.GET("/:id/movimentacao.pdf", relatoriosH.Movimentacao)
		}

		v1.GET("/logs", gestao, logsH.Listar)

		usuarios := v1.Group("/usuarios", middleware.RequireRole(model.RoleAdmin))
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("", usuariosH.Criar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Remover)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
