package ports

import (
	"context"
	"io"

	"NewsToChat/internal/domain"
)

// Backend talks to a remote inference service rooted at baseURL.
type Backend interface {
	ListArticles(ctx context.Context, baseURL string) ([]domain.Article, error)
	Convert(ctx context.Context, baseURL string, req domain.ConversionRequest) (domain.ConversionResult, error)
}

// HealthChecker reports backend readiness.
type HealthChecker interface {
	Health(ctx context.Context, baseURL string) (domain.Health, error)
}

// Uploader pushes a CSV of articles to the backend.
type Uploader interface {
	UploadCSV(ctx context.Context, baseURL, filename string, r io.Reader) (domain.UploadReceipt, error)
}

// ArticleSource supplies a finite list of candidate articles.
type ArticleSource interface {
	Name() string
	Articles(ctx context.Context) ([]domain.Article, error)
}

// DialogueGenerator produces fallback dialogue keyed by article identity.
type DialogueGenerator interface {
	Generate(articleID int) domain.Dialogue
}

// Detached is implemented by sources whose article ids the backend cannot resolve.
// Their articles are converted by content instead of by id.
type Detached interface {
	Detached() bool
}

// Scheduler runs a job on a recurring schedule until stopped.
type Scheduler interface {
	Start(ctx context.Context, job func(context.Context)) error
	Stop(ctx context.Context) error
}
