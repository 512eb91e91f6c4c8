// Command coursegen generates and inspects courses offline, without the HTTP
// server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/p-n-ai/mentai/internal/ai"
	"github.com/p-n-ai/mentai/internal/content"
	"github.com/p-n-ai/mentai/internal/course"
	"github.com/p-n-ai/mentai/internal/platform/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var lib *content.Library
	if cfg.ContentPath != "" {
		lib, err = content.LoadDir(cfg.ContentPath)
	} else {
		lib, err = content.NewEmbedded()
	}
	if err != nil {
		return err
	}

	router := ai.NewRouter()
	if cfg.HasAIProvider() {
		router.Register("gemini", ai.NewGoogleProvider(cfg.AI.Google.APIKey,
			ai.WithGoogleModel(cfg.AI.Google.Model),
			ai.WithGoogleTimeout(cfg.AI.Timeout),
		))
	}

	app := &App{
		Library: lib,
		Courses: course.NewService(course.Config{
			Library:   lib,
			Generator: ai.NewGenerator(router),
		}),
	}
	return NewRootCmd(app).Execute()
}
