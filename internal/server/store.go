package server

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
)

const (
	bodyColumn     = "honbun"
	headlineColumn = "midasi"
)

// ArticleStore holds the articles the demo backend serves.
type ArticleStore struct {
	mu       sync.RWMutex
	articles []domain.Article
}

// NewArticleStore starts with a copy of articles.
func NewArticleStore(articles []domain.Article) *ArticleStore {
	return &ArticleStore{articles: append([]domain.Article(nil), articles...)}
}

func (s *ArticleStore) List() []domain.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Article(nil), s.articles...)
}

func (s *ArticleStore) Get(id int) (domain.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FindArticle(s.articles, id)
}

func (s *ArticleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// Replace swaps the whole article set.
func (s *ArticleStore) Replace(articles []domain.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = articles
}

// RefreshFrom replaces the articles with those of src. An empty or failed
// fetch keeps the current set.
func (s *ArticleStore) RefreshFrom(ctx context.Context, src ports.ArticleSource) (int, error) {
	articles, err := src.Articles(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch from %s: %w", src.Name(), err)
	}
	if len(articles) == 0 {
		return 0, fmt.Errorf("%s returned no articles", src.Name())
	}
	s.Replace(articles)
	return len(articles), nil
}

// ReadCSV parses articles from a CSV with a honbun column and an optional midasi column.
// Rows with an empty body are skipped. Ids are assigned in row order starting at 0.
func ReadCSV(r io.Reader) ([]domain.Article, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	bodyIdx, headlineIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case bodyColumn:
			bodyIdx = i
		case headlineColumn:
			headlineIdx = i
		}
	}
	if bodyIdx < 0 {
		return nil, fmt.Errorf("csv must have a %q column", bodyColumn)
	}

	var articles []domain.Article
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		content := strings.TrimSpace(field(record, bodyIdx))
		if content == "" {
			continue
		}
		preview := strings.TrimSpace(field(record, headlineIdx))
		if preview == "" {
			preview = domain.DerivePreview(content)
		}
		articles = append(articles, domain.Article{ID: len(articles), Preview: preview, Content: content})
	}
	return articles, nil
}

// LoadCSVFile reads articles from path.
func LoadCSVFile(path string) ([]domain.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	articles, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return articles, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
