// Command seed-achievements loads an achievement catalog JSON file into
// storage. The API serves no catalog endpoints; this is how the catalog
// gets populated.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/playerbase/playerbase/internal/factory"
	"github.com/playerbase/playerbase/internal/model"
	"github.com/playerbase/playerbase/internal/services/token"
	redisstorage "github.com/playerbase/playerbase/internal/storage/redis"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage: seed-achievements <catalog.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("failed to read catalog file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var catalog []model.Achievement
	if err := json.Unmarshal(data, &catalog); err != nil {
		logger.Error("failed to parse catalog file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg := factory.Config{
		// The seeder never issues tokens; the factory still wants a secret
		TokenConfig: token.Config{Secret: "seed-achievements"},
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	for i := range catalog {
		a := &catalog[i]
		if a.ID == "" || a.Name == "" || a.Description == "" {
			logger.Error("achievement missing required fields", slog.Int("index", i))
			os.Exit(1)
		}
		if err := app.Storage.SaveAchievement(ctx, a); err != nil {
			logger.Error("failed to save achievement",
				slog.String("id", a.ID),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("achievement saved", slog.String("id", a.ID), slog.Int("points", a.Points))
	}

	logger.Info("catalog seeded", slog.Int("count", len(catalog)))
}
