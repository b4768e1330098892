package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port string }

type APICfg struct {
	BaseURL    string
	AdminToken string
	TimeoutSec int
}

type DBCfg struct{ DSN string }
type RedisCfg struct{ Addr string }

type ListCfg struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Cfg struct {
	App   AppCfg
	API   APICfg
	DB    DBCfg
	Redis RedisCfg
	List  ListCfg
}

// Load reads configuration from the environment, with .env applied first.
// ADMIN_TOKEN is required; everything else has a sensible default.
func Load() Cfg {
	// Load .env into process env (if file exists)
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("API_TIMEOUT_SEC", 30)
	viper.SetDefault("LIST_DEFAULT_PAGE_SIZE", 20)
	viper.SetDefault("LIST_MAX_PAGE_SIZE", 100)

	cfg := Cfg{
		App: AppCfg{
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		API: APICfg{
			BaseURL:    viper.GetString("API_BASE_URL"),
			AdminToken: strings.TrimSpace(viper.GetString("ADMIN_TOKEN")),
			TimeoutSec: viper.GetInt("API_TIMEOUT_SEC"),
		},
		DB:    DBCfg{DSN: viper.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: viper.GetString("REDIS_ADDR")},
		List: ListCfg{
			DefaultPageSize: viper.GetInt("LIST_DEFAULT_PAGE_SIZE"),
			MaxPageSize:     viper.GetInt("LIST_MAX_PAGE_SIZE"),
		},
	}

	// Fail fast on required settings
	if cfg.API.AdminToken == "" {
		log.Fatal().Msg("ADMIN_TOKEN is required")
	}

	return cfg
}
