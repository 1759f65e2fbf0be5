package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
	"NewsToChat/internal/source"
)

// Name is the registry name of the feed source.
const Name = "feed"

// Source turns the newest items of an RSS/Atom feed into articles.
// Ids are positions in the feed, so the backend cannot resolve them.
type Source struct {
	url      string
	maxItems int
	parser   *gofeed.Parser
	logger   *slog.Logger
}

var (
	_ ports.ArticleSource = (*Source)(nil)
	_ ports.Detached      = (*Source)(nil)
)

// NewSource builds a feed source. httpClient may be nil.
func NewSource(url string, maxItems int, httpClient *http.Client, logger *slog.Logger) *Source {
	parser := gofeed.NewParser()
	if httpClient != nil {
		parser.Client = httpClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Source{
		url:      url,
		maxItems: maxItems,
		parser:   parser,
		logger:   logger,
	}
}

func (s *Source) Name() string { return Name }

func (s *Source) Detached() bool { return true }

func (s *Source) Articles(ctx context.Context) ([]domain.Article, error) {
	if s.url == "" {
		return nil, fmt.Errorf("feed url is not configured")
	}

	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", s.url, err)
	}

	count := len(feed.Items)
	if s.maxItems > 0 && count > s.maxItems {
		count = s.maxItems
	}

	articles := make([]domain.Article, 0, count)
	for _, item := range feed.Items[:count] {
		if item == nil {
			continue
		}
		content := itemText(item)
		if content == "" {
			s.logger.Debug("skip feed item without text", "title", item.Title, "link", item.Link)
			continue
		}

		preview := strings.TrimSpace(item.Title)
		if preview == "" {
			preview = domain.DerivePreview(content)
		}
		articles = append(articles, domain.Article{
			ID:      len(articles),
			Preview: preview,
			Content: content,
		})
	}

	s.logger.Debug("feed fetched", "url", s.url, "items", len(feed.Items), "articles", len(articles))
	return articles, nil
}

func itemText(item *gofeed.Item) string {
	if text := source.PlainText(item.Content); text != "" {
		return text
	}
	return source.PlainText(item.Description)
}
