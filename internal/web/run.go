package web

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/signlingo/backend/internal/auth"
	"github.com/signlingo/backend/internal/config"
	"github.com/signlingo/backend/internal/database"
	"github.com/signlingo/backend/internal/leaderboard"
	"github.com/signlingo/backend/internal/signs"
	"github.com/signlingo/backend/internal/storage"
)

func Run(logger *zap.Logger) error {
	conf, err := config.ParseConfig()
	if err != nil {
		return err
	}

	db, err := database.OpenDataBase(logger, conf.DSN())
	if err != nil {
		return errors.Wrap(err, "Failed to open database")
	}

	verifier, err := auth.NewVerifier(conf.Auth.JWTSecret, conf.Auth.Audience)
	if err != nil {
		return errors.Wrap(err, "Failed to build token verifier")
	}

	images, err := storage.NewClient(conf.Storage.BaseURL, conf.Storage.ServiceRoleKey, conf.Storage.Bucket, logger)
	if err != nil {
		return errors.Wrap(err, "Failed to build storage client")
	}

	prompts, err := signs.LoadPrompts(conf.Signs.PromptsPath)
	if err != nil {
		return errors.Wrap(err, "Failed to load sign prompts")
	}
	analyzer, err := signs.NewAnalyzer(signs.Options{
		APIKey:  conf.OpenRouter.APIKey,
		BaseURL: conf.OpenRouter.BaseURL,
		Model:   conf.OpenRouter.Model,
		Referer: conf.OpenRouter.Referer,
		Title:   conf.OpenRouter.Title,
	}, prompts, logger)
	if err != nil {
		return errors.Wrap(err, "Failed to build sign analyzer")
	}

	engine := leaderboard.NewEngine(db, logger)

	s, err := newServer(conf, logger, db, engine, verifier, images, analyzer)
	if err != nil {
		return errors.Wrap(err, "Failed to build server")
	}

	return errors.Wrap(s.run(), "Server failed")
}
