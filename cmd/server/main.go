package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/p-n-ai/mentai/internal/ai"
	"github.com/p-n-ai/mentai/internal/content"
	"github.com/p-n-ai/mentai/internal/course"
	"github.com/p-n-ai/mentai/internal/execution"
	"github.com/p-n-ai/mentai/internal/mentor"
	"github.com/p-n-ai/mentai/internal/platform/cache"
	"github.com/p-n-ai/mentai/internal/platform/config"
	"github.com/p-n-ai/mentai/internal/platform/database"
	"github.com/p-n-ai/mentai/internal/progress"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv, cleanup, err := build(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // full AI course generation makes 11 model calls
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"addr", httpSrv.Addr,
			"ai_configured", srv.aiConfigured,
			"database", cfg.Database.Enabled,
			"cache", cfg.Cache.Enabled,
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// build wires every dependency from cfg. The returned cleanup closes the
// database and cache connections.
func build(ctx context.Context, cfg *config.Config) (*server, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	lib, err := loadLibrary(cfg.ContentPath)
	if err != nil {
		return nil, cleanup, err
	}

	router := newAIRouter(cfg.AI)
	srv := &server{
		aiConfigured: router.HasProvider(),
		models:       modelIDs(router),
		progress:     progress.NewMemoryStore(),
		events:       progress.NopEventLogger{},
	}

	if cfg.Database.Enabled {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, db.Close)

		if err := db.Migrate(ctx); err != nil {
			return nil, cleanup, err
		}
		store, err := progress.NewPostgresStore(db.Pool)
		if err != nil {
			return nil, cleanup, err
		}
		srv.progress = store
		srv.events = progress.NewPostgresEventLogger(db.Pool)
		srv.checks = append(srv.checks, readinessCheck{name: "database", check: db.HealthCheck})
	}

	var courseCache course.Cache
	if cfg.Cache.Enabled {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() {
			if err := c.Close(); err != nil {
				slog.Warn("closing cache", "error", err)
			}
		})
		courseCache = course.NewRedisCache(c, cfg.Cache.TTL)
		srv.checks = append(srv.checks, readinessCheck{name: "cache", check: c.HealthCheck})
	}

	srv.courses = course.NewService(course.Config{
		Library:   lib,
		Generator: ai.NewGenerator(router),
		Cache:     courseCache,
	})

	judge0 := execution.NewJudge0Client(cfg.Judge0.APIKey,
		execution.WithJudge0URL(cfg.Judge0.URL),
		execution.WithJudge0Host(cfg.Judge0.Host),
	)
	srv.runner = execution.NewRunner(judge0)

	srv.mentor = mentor.New(mentor.Config{
		AI:     router,
		Budget: ai.NewInMemoryBudget(int64(cfg.AI.TokenBudget)),
	})

	return srv, cleanup, nil
}

func loadLibrary(path string) (*content.Library, error) {
	if path == "" {
		return content.NewEmbedded()
	}
	lib, err := content.LoadDir(path)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", path, err)
	}
	slog.Info("content loaded", "path", path, "languages", len(lib.Languages()))
	return lib, nil
}

// newAIRouter registers the Gemini model and, when set, a fallback model.
// With no API key the router stays empty and AI features are disabled.
func newAIRouter(cfg config.AIConfig) *ai.Router {
	router := ai.NewRouter()
	if cfg.Google.APIKey == "" {
		return router
	}
	router.Register("gemini", ai.NewGoogleProvider(cfg.Google.APIKey,
		ai.WithGoogleModel(cfg.Google.Model),
		ai.WithGoogleTimeout(cfg.Timeout),
	))
	if cfg.FallbackModel != "" && cfg.FallbackModel != cfg.Google.Model {
		router.Register("gemini-fallback", ai.NewGoogleProvider(cfg.Google.APIKey,
			ai.WithGoogleModel(cfg.FallbackModel),
			ai.WithGoogleTimeout(cfg.Timeout),
		))
	}
	return router
}

func modelIDs(router *ai.Router) []string {
	var ids []string
	for _, m := range router.Models() {
		if !slices.Contains(ids, m.ID) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
