package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
)

// SessionDeps wires the collaborators of a Session.
type SessionDeps struct {
	Connection   *Connection
	Orchestrator *Orchestrator
	// Source supplies articles while no interactive connection is active.
	Source   ports.ArticleSource
	Uploader ports.Uploader
	Health   ports.HealthChecker
	// NormalizeText cleans user-entered article text (e.g. strips pasted HTML).
	NormalizeText func(string) string
	Logger        *slog.Logger
}

// Snapshot is a read-only copy of the session for presentation.
type Snapshot struct {
	ID                  string
	Connection          domain.ConnectionState
	Articles            []domain.Article
	SelectedID          int
	HasSelection        bool
	Transcript          []domain.ChatMessage
	Summary             string
	ProcessingTimeLabel string
	Degraded            bool
	Loading             bool
	LastError           string
}

// Session holds all volatile state of one user session.
type Session struct {
	id       string
	conn     *Connection
	orch     *Orchestrator
	source   ports.ArticleSource
	uploader ports.Uploader
	health   ports.HealthChecker
	clean    func(string) string
	logger   *slog.Logger

	mu           sync.Mutex
	articles     []domain.Article
	byReference  bool
	selectedID   int
	hasSelection bool
	transcript   []domain.ChatMessage
	summary      string
	label        string
	degraded     bool
	loading      bool
	lastError    string
}

// ErrConversionInFlight rejects a conversion while another one is running.
var ErrConversionInFlight = domain.NewValidationError("conversion already in progress", nil)

// NewSession creates an empty session with a fresh id.
func NewSession(deps SessionDeps) *Session {
	id := uuid.NewString()
	clean := deps.NormalizeText
	if clean == nil {
		clean = strings.TrimSpace
	}
	return &Session{
		id:         id,
		conn:       deps.Connection,
		orch:       deps.Orchestrator,
		source:     deps.Source,
		uploader:   deps.Uploader,
		health:     deps.Health,
		clean:      clean,
		logger:     orDiscard(deps.Logger).With("session", id),
		transcript: ResetTranscript(),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// LoadArticles replaces the article list from the configured source.
func (s *Session) LoadArticles(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	articles, err := s.source.Articles(ctx)
	if err != nil {
		return fmt.Errorf("load articles from %s: %w", s.source.Name(), err)
	}

	byRef := true
	if d, ok := s.source.(ports.Detached); ok && d.Detached() {
		byRef = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setArticles(articles, byRef)
	s.logger.Debug("articles loaded", "source", s.source.Name(), "count", len(articles))
	return nil
}

// Connect establishes an interactive backend connection and adopts its articles.
// On failure the article list is left untouched.
func (s *Session) Connect(ctx context.Context, url string) error {
	articles, err := s.conn.Connect(ctx, url)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = describe(err)
		return err
	}
	s.lastError = ""
	s.setArticles(articles, true)
	return nil
}

// Disconnect drops the connection together with the articles it provided.
func (s *Session) Disconnect() {
	s.conn.Disconnect()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = nil
	s.hasSelection = false
	s.selectedID = 0
}

// Select marks an article as the conversion target.
func (s *Session) Select(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := domain.FindArticle(s.articles, id); !ok {
		return domain.NewValidationError(fmt.Sprintf("article %d does not exist", id), nil)
	}
	s.selectedID = id
	s.hasSelection = true
	return nil
}

// ConvertSelected converts the selected article.
func (s *Session) ConvertSelected(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasSelection {
		s.mu.Unlock()
		return s.reject(domain.NewValidationError("no article selected", nil))
	}
	article, _ := domain.FindArticle(s.articles, s.selectedID)
	byRef := s.byReference
	s.mu.Unlock()

	req := domain.NewArticleRequest(article.ID)
	if !byRef {
		req = domain.NewTextRequest(article.Content, article.Preview, domain.ToneUnset)
	}
	return s.convert(ctx, req)
}

// ConvertText converts user-entered article text.
func (s *Session) ConvertText(ctx context.Context, text, title string, tone domain.Tone) error {
	return s.convert(ctx, domain.NewTextRequest(s.clean(text), title, tone))
}

func (s *Session) convert(ctx context.Context, req domain.ConversionRequest) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrConversionInFlight
	}
	s.loading = true
	s.mu.Unlock()

	result, err := s.orch.Convert(ctx, req, s.conn.State())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastError = describe(err)
		if !domain.IsKind(err, domain.KindValidation) {
			s.transcript = AppendNotice(s.transcript, s.lastError)
		}
		return err
	}

	s.lastError = ""
	s.transcript = BuildTranscript(s.transcript, result)
	s.summary = result.Summary
	s.label = result.ProcessingTimeLabel
	s.degraded = result.Degraded
	s.logger.Info("conversion finished", "turns", len(result.Turns), "degraded", result.Degraded)
	return nil
}

// UploadCSV sends a CSV file to the connected backend and refreshes the article list.
func (s *Session) UploadCSV(ctx context.Context, path string) (domain.UploadReceipt, error) {
	state := s.conn.State()
	if state.Status != domain.StatusConnected {
		return domain.UploadReceipt{}, s.reject(domain.NewValidationError("connect to a backend before uploading", nil))
	}
	if s.uploader == nil {
		return domain.UploadReceipt{}, s.reject(domain.NewValidationError("backend does not support uploads", nil))
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.UploadReceipt{}, s.reject(domain.NewValidationError(fmt.Sprintf("cannot open %s", path), err))
	}
	defer f.Close()

	receipt, err := s.uploader.UploadCSV(ctx, state.URL, filepath.Base(path), f)
	if err != nil {
		return domain.UploadReceipt{}, s.reject(err)
	}

	if err := s.Connect(ctx, state.URL); err != nil {
		return receipt, fmt.Errorf("reload articles: %w", err)
	}
	return receipt, nil
}

// Health queries the active backend: the connected one, else the configured default.
func (s *Session) Health(ctx context.Context) (domain.Health, error) {
	base := s.conn.State().URL
	if base == "" {
		base = s.orch.DefaultURL()
	}
	if base == "" || s.health == nil {
		return domain.Health{}, domain.NewValidationError("no backend configured", nil)
	}
	return s.health.Health(ctx, base)
}

// Reset clears the transcript and summary. Articles and connection are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = ResetTranscript()
	s.summary = ""
	s.label = ""
	s.degraded = false
	s.lastError = ""
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	conn := s.conn.State()

	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:                  s.id,
		Connection:          conn,
		Articles:            append([]domain.Article(nil), s.articles...),
		SelectedID:          s.selectedID,
		HasSelection:        s.hasSelection,
		Transcript:          append([]domain.ChatMessage(nil), s.transcript...),
		Summary:             s.summary,
		ProcessingTimeLabel: s.label,
		Degraded:            s.degraded,
		Loading:             s.loading,
		LastError:           s.lastError,
	}
}

// setArticles must be called with mu held. The first article is auto-selected
// unless the current selection is still present.
func (s *Session) setArticles(articles []domain.Article, byRef bool) {
	s.articles = articles
	s.byReference = byRef

	if s.hasSelection {
		if _, ok := domain.FindArticle(articles, s.selectedID); ok {
			return
		}
	}
	s.hasSelection = len(articles) > 0
	s.selectedID = 0
	if s.hasSelection {
		s.selectedID = articles[0].ID
	}
}

func (s *Session) reject(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = describe(err)
	return err
}

func describe(err error) string {
	de := asDomainError(err, err.Error())
	if hint := de.Remediation(); hint != "" {
		return de.Error() + " " + hint
	}
	return de.Error()
}
