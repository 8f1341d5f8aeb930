package app

import (
	"context"
	"log"
	"os"
	"time"

	"resume-match/internal/config"
	"resume-match/internal/database"
	dbpostgres "resume-match/internal/database/postgres"
	"resume-match/internal/infrastructure/ai"
	"resume-match/internal/infrastructure/cache"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Redis  *cache.Redis
	AI     *ai.Client
	Logger *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb := cache.NewRedis(cfg.Redis, logger)

	aiClient := ai.NewClient(ai.Config{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		BaseURL:        cfg.Gemini.BaseURL,
		MaxRetries:     cfg.Gemini.MaxRetries,
		InitialBackoff: cfg.Gemini.InitialBackoff,
		RequestTimeout: cfg.Gemini.RequestTimeout,
	}, logger)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		AI:     aiClient,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
