package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to an env var of the same name.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Comma-separated allowed origins, "*" for any
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	// Database: a postgres:// URL selects PostgreSQL, anything else is a SQLite path
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis (optional, dashboard cache)
	RedisURL                 string `mapstructure:"REDIS_URL"`
	DashboardCacheTTLSeconds int    `mapstructure:"DASHBOARD_CACHE_TTL_SECONDS"`

	// Auth
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours   int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	AdminDefaultPassword string `mapstructure:"ADMIN_DEFAULT_PASSWORD"`

	// Business
	EstoqueCriticoLimite int    `mapstructure:"ESTOQUE_CRITICO_LIMITE"`
	Timezone             string `mapstructure:"TIMEZONE"`

	// Document header
	EmpresaNome        string `mapstructure:"EMPRESA_NOME"`
	EmpresaCNPJ        string `mapstructure:"EMPRESA_CNPJ"`
	EmpresaEndereco    string `mapstructure:"EMPRESA_ENDERECO"`
	EmpresaTelefone    string `mapstructure:"EMPRESA_TELEFONE"`
	ResponsavelTecnico string `mapstructure:"RESPONSAVEL_TECNICO"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// Optional .env file for local development, does not fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DATABASE_URL", "epicontrol.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("DASHBOARD_CACHE_TTL_SECONDS", 30)
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_EXPIRATION_HOURS", 8)
	v.SetDefault("ADMIN_DEFAULT_PASSWORD", "1234")
	v.SetDefault("ESTOQUE_CRITICO_LIMITE", 10)
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("EMPRESA_NOME", "EMPRESA")
	v.SetDefault("EMPRESA_CNPJ", "00.000.000/0001-00")
	v.SetDefault("EMPRESA_ENDERECO", "")
	v.SetDefault("EMPRESA_TELEFONE", "")
	v.SetDefault("RESPONSAVEL_TECNICO", "")
}

// Location resolves the configured timezone, falling back to the process
// local zone when the name is unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DashboardCacheTTL is zero when caching is disabled.
func (c *Config) DashboardCacheTTL() time.Duration {
	if c.DashboardCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.DashboardCacheTTLSeconds) * time.Second
}
