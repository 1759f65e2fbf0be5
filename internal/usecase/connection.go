package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
)

// Connection owns the lifecycle of the user-supplied backend endpoint.
// Its state is only ever written by Connect and Disconnect.
type Connection struct {
	backend ports.Backend
	logger  *slog.Logger

	mu      sync.Mutex
	state   domain.ConnectionState
	attempt uint64
}

// NewConnection starts in the disconnected state.
func NewConnection(backend ports.Backend, logger *slog.Logger) *Connection {
	return &Connection{
		backend: backend,
		logger:  orDiscard(logger),
		state:   domain.DisconnectedState(),
	}
}

// State returns a snapshot of the connection.
func (c *Connection) State() domain.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// NormalizeURL trims whitespace and a single trailing slash.
func NormalizeURL(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}

// Connect probes {url}/articles and returns the backend's article list on success.
// Any failure leaves the connection in the error state with a human-readable message.
func (c *Connection) Connect(ctx context.Context, rawURL string) ([]domain.Article, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.NewValidationError("backend url is empty", nil)
	}
	url := NormalizeURL(rawURL)

	c.mu.Lock()
	c.attempt++
	attempt := c.attempt
	from := c.state.Status
	c.state = domain.ConnectionState{Status: domain.StatusConnecting}
	c.mu.Unlock()
	c.logger.Debug("connection transition", "from", from, "to", domain.StatusConnecting, "url", url)

	articles, err := c.backend.ListArticles(ctx, url)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Disconnect or a newer Connect ran while the probe was in flight.
	if attempt != c.attempt {
		return nil, domain.NewConnectivityError("connection attempt was superseded", 0, ctx.Err())
	}

	if err != nil {
		de := asDomainError(err, "could not reach backend")
		c.state = domain.ConnectionState{Status: domain.StatusError, ErrorMessage: de.Message}
		c.logger.Warn("connection failed", "url", url, "kind", de.Kind, "error", err)
		return nil, de
	}

	c.state = domain.ConnectionState{URL: url, Status: domain.StatusConnected}
	c.logger.Debug("connection transition", "from", domain.StatusConnecting, "to", domain.StatusConnected, "articles", len(articles))
	return articles, nil
}

// Disconnect resets to the disconnected state. Calling it repeatedly is harmless.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attempt++
	if c.state.Status != domain.StatusDisconnected {
		c.logger.Debug("connection transition", "from", c.state.Status, "to", domain.StatusDisconnected)
	}
	c.state = domain.DisconnectedState()
}

func asDomainError(err error, fallback string) *domain.Error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.NewConnectivityError(fallback, 0, err)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
