package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
)

// Options configures the demo backend.
type Options struct {
	// SimulateTunnelWarning serves an HTML interstitial to clients that do not
	// send the skip-warning header.
	SimulateTunnelWarning bool
	// RefreshSource, when set together with Scheduler, replaces the served
	// articles once at startup and then on every scheduled run.
	RefreshSource ports.ArticleSource
	Scheduler     ports.Scheduler
}

// Server is a local stand-in for the inference backend.
type Server struct {
	store    *ArticleStore
	composer *Composer
	opts     Options
	logger   *slog.Logger
	engine   *gin.Engine
}

// New builds the server and its routes.
func New(store *ArticleStore, composer *Composer, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		store:    store,
		composer: composer,
		opts:     opts,
		logger:   logger,
	}
	s.engine = s.router()
	return s
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	if s.opts.SimulateTunnelWarning {
		r.Use(tunnelInterstitial())
	}

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.GET("/articles", s.handleArticles)
	r.POST("/convert", s.handleConvert)
	r.POST("/upload", s.handleUpload)
	return r
}

// Handler exposes the routes, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := s.startRefresh(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("demo backend listening", "addr", addr, "articles", s.store.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.opts.Scheduler != nil {
		if err := s.opts.Scheduler.Stop(shutdownCtx); err != nil {
			s.logger.Warn("scheduler did not stop cleanly", "error", err)
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("demo backend stopped")
	return nil
}

func (s *Server) startRefresh(ctx context.Context) error {
	src, sched := s.opts.RefreshSource, s.opts.Scheduler
	if src == nil || sched == nil {
		return nil
	}

	refresh := func(ctx context.Context) {
		n, err := s.store.RefreshFrom(ctx, src)
		if err != nil {
			s.logger.Warn("article refresh failed, keeping current articles", "source", src.Name(), "error", err)
			return
		}
		s.logger.Info("articles refreshed", "source", src.Name(), "count", n)
	}

	refresh(ctx)
	if err := sched.Start(ctx, refresh); err != nil {
		return fmt.Errorf("start article refresh: %w", err)
	}
	return nil
}

type articleJSON struct {
	ID      int    `json:"id"`
	Preview string `json:"preview"`
	Content string `json:"content"`
}

type convertRequest struct {
	ArticleID *int   `json:"article_id"`
	Article   string `json:"article"`
	Tone      string `json:"tone"`
}

type turnJSON struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type convertResponse struct {
	Summary        string     `json:"summary"`
	Conversation   []turnJSON `json:"conversation"`
	ProcessingTime string     `json:"processing_time"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "News-to-Chat demo backend"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Health{
		Status:        "healthy",
		ModelLoaded:   false,
		ArticlesCount: s.store.Len(),
	})
}

func (s *Server) handleArticles(c *gin.Context) {
	articles := s.store.List()
	out := make([]articleJSON, 0, len(articles))
	for _, a := range articles {
		out = append(out, articleJSON{ID: a.ID, Preview: a.Preview, Content: a.Content})
	}
	c.JSON(http.StatusOK, gin.H{"articles": out})
}

func (s *Server) handleConvert(c *gin.Context) {
	started := time.Now()

	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid JSON body: " + err.Error()})
		return
	}
	tone, err := domain.ParseTone(req.Tone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var dialogue domain.Dialogue
	switch {
	case req.ArticleID != nil:
		article, ok := s.store.Get(*req.ArticleID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": fmt.Sprintf("article %d not found", *req.ArticleID)})
			return
		}
		dialogue = s.composer.ForArticle(article)
	case req.Article != "":
		dialogue = s.composer.ForText(req.Article, tone)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "article_id or article is required"})
		return
	}

	resp := convertResponse{
		Summary:        dialogue.Summary,
		Conversation:   make([]turnJSON, 0, len(dialogue.Turns)),
		ProcessingTime: processingLabel(time.Since(started).Seconds()),
	}
	for _, t := range dialogue.Turns {
		resp.Conversation = append(resp.Conversation, turnJSON{Role: string(t.Speaker), Content: t.Content})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "multipart field \"file\" is required"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	defer f.Close()

	articles, err := ReadCSV(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	s.store.Replace(articles)
	s.logger.Info("articles uploaded", "file", header.Filename, "count", len(articles))
	c.JSON(http.StatusOK, domain.UploadReceipt{
		Message:       fmt.Sprintf("%d件の記事を読み込みました", len(articles)),
		ArticlesCount: len(articles),
	})
}
