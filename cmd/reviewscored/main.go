package main

import (
	"log/slog"
	"os"

	"github.com/spacesedan/reviewscore/config"
	"github.com/spacesedan/reviewscore/internal/classifier"
	"github.com/spacesedan/reviewscore/internal/logging"
	"github.com/spacesedan/reviewscore/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	registry := classifier.NewRegistry(config.ModelDir())

	if config.PreloadModels() {
		slog.Info("[Main] Preloading classifiers...")
		if err := registry.Preload(); err != nil {
			slog.Error("[Main] Failed to preload classifiers",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	srv, err := server.New(registry, config.ResultsDir())
	if err != nil {
		slog.Error("[Main] Failed to prepare results directory",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	addr := config.ServerAddr()
	slog.Info("[Main] Listening", slog.String("addr", addr))
	if err := srv.Routes().Run(addr); err != nil {
		slog.Error("[Main] Server stopped",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}
