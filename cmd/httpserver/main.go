package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cinelist/dynamodb"
	"cinelist/favorite"
	"cinelist/httpserver"
	"cinelist/pkg/config"
	"cinelist/pkg/sentry"
	"cinelist/postgres"
	"cinelist/tmdb"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	favoriteRepo, err := newFavoriteRepository(cfg)
	if err != nil {
		slog.Error("Cannot set up favorites storage", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}

	server := httpserver.Default(cfg)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)
	server.FavoriteService = favorite.NewUsecase(favoriteRepo)
	server.MovieService = tmdb.NewClient(tmdb.Options{
		APIKey:   cfg.TMDB.APIKey,
		BaseURL:  cfg.TMDB.BaseURL,
		Language: cfg.TMDB.Language,
		Region:   cfg.TMDB.Region,
	})

	slog.Info("server started!", "addr", server.Addr)
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newFavoriteRepository(cfg *config.Config) (favorite.Repository, error) {
	switch cfg.DB.Driver {
	case "dynamodb":
		client, err := dynamodb.NewClient(context.Background(), dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		return dynamodb.NewFavoriteRepository(client, cfg.DynamoDB.FavoritesTable), nil
	default:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     fmt.Sprintf("%d", cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, err
		}
		return postgres.NewFavoriteRepository(db), nil
	}
}
