package source

import (
	"context"
	"io"
	"log/slog"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
)

// BackendName is the registry name of the default-backend source.
const BackendName = "backend"

// BackendSource lists articles from the configured default backend and
// falls back to another source when the backend is missing or failing.
type BackendSource struct {
	backend  ports.Backend
	baseURL  string
	fallback ports.ArticleSource
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*BackendSource)(nil)

// NewBackendSource wires the backend client. A nil fallback means StaticSource.
func NewBackendSource(backend ports.Backend, baseURL string, fallback ports.ArticleSource, logger *slog.Logger) *BackendSource {
	if fallback == nil {
		fallback = StaticSource{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BackendSource{
		backend:  backend,
		baseURL:  baseURL,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *BackendSource) Name() string { return BackendName }

// Articles never fails unless the fallback does.
func (s *BackendSource) Articles(ctx context.Context) ([]domain.Article, error) {
	if s.baseURL == "" || s.backend == nil {
		return s.fallback.Articles(ctx)
	}

	articles, err := s.backend.ListArticles(ctx, s.baseURL)
	if err != nil {
		s.logger.Warn("default backend unavailable, using fallback articles",
			"url", s.baseURL, "fallback", s.fallback.Name(), "error", err)
		return s.fallback.Articles(ctx)
	}
	return articles, nil
}
