package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	DB struct {
		Driver    string `envconfig:"DB_DRIVER" default:"postgres"`
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region         string `envconfig:"DDB_REGION"`
		Endpoint       string `envconfig:"DDB_ENDPOINT"`
		AccessKey      string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey      string `envconfig:"DDB_SECRET_KEY"`
		SessionToken   string `envconfig:"DDB_SESSION_TOKEN"`
		FavoritesTable string `envconfig:"DDB_FAVORITES_TABLE"`
	}
	TMDB struct {
		APIKey   string `envconfig:"TMDB_API_KEY"`
		BaseURL  string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
		Language string `envconfig:"TMDB_LANGUAGE" default:"pt-BR"`
		Region   string `envconfig:"TMDB_REGION" default:"BR"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
