package app

import (
	"fmt"
	"log/slog"

	"NewsToChat/internal/config"
	"NewsToChat/internal/infrastructure/backend"
	"NewsToChat/internal/infrastructure/feed"
	"NewsToChat/internal/infrastructure/scheduler"
	"NewsToChat/internal/logging"
	"NewsToChat/internal/mock"
	"NewsToChat/internal/server"
	"NewsToChat/internal/source"
	"NewsToChat/internal/usecase"
)

// NewSession wires a conversion session from configuration.
func NewSession(cfg config.Config, baseLogger *slog.Logger) (*usecase.Session, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	client := backend.NewClient(cfg.Backend.Timeout, cfg.Backend.SendSkipWarningHeader(), baseLogger.With("component", "backend"))

	registry := source.NewRegistry()
	registry.Register(source.StaticSource{})
	registry.Register(source.NewBackendSource(client, cfg.Backend.DefaultURL, source.StaticSource{}, baseLogger.With("component", "source.backend")))
	if cfg.Sources.FeedURL != "" {
		registry.Register(feed.NewSource(cfg.Sources.FeedURL, cfg.Sources.FeedSize, nil, baseLogger.With("component", "source.feed")))
	}

	articles, err := registry.Resolve(cfg.Sources.Default)
	if err != nil {
		return nil, fmt.Errorf("resolve article source: %w", err)
	}

	orchestrator := usecase.NewOrchestrator(
		usecase.OrchestratorConfig{DefaultBaseURL: cfg.Backend.DefaultURL},
		client,
		mock.NewGenerator(),
		baseLogger.With("component", "orchestrator"),
	)

	return usecase.NewSession(usecase.SessionDeps{
		Connection:    usecase.NewConnection(client, baseLogger.With("component", "connection")),
		Orchestrator:  orchestrator,
		Source:        articles,
		Uploader:      client,
		Health:        client,
		NormalizeText: source.PlainText,
		Logger:        baseLogger.With("component", "session"),
	}), nil
}

// NewServer wires the demo backend. Articles come from the configured CSV, or the built-in set.
// With a feed and a refresh schedule configured, feed articles replace them once running.
func NewServer(cfg config.Config, baseLogger *slog.Logger) (*server.Server, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	articles := mock.Articles()
	if cfg.Server.CSVPath != "" {
		loaded, err := server.LoadCSVFile(cfg.Server.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("load articles: %w", err)
		}
		articles = loaded
	}

	opts := server.Options{SimulateTunnelWarning: cfg.Server.SimulateTunnelWarning}
	if cfg.Server.RefreshSchedule != "" && cfg.Sources.FeedURL != "" {
		opts.RefreshSource = feed.NewSource(cfg.Sources.FeedURL, cfg.Sources.FeedSize, nil, baseLogger.With("component", "source.feed"))
		opts.Scheduler = scheduler.NewCronScheduler(cfg.Server.RefreshSchedule, baseLogger.With("component", "scheduler"))
	}

	return server.New(
		server.NewArticleStore(articles),
		server.NewComposer(mock.NewGenerator()),
		opts,
		baseLogger.With("component", "server"),
	), nil
}
