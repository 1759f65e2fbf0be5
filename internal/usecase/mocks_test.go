package usecase

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"NewsToChat/internal/domain"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListArticles(ctx context.Context, baseURL string) ([]domain.Article, error) {
	args := m.Called(ctx, baseURL)
	articles, _ := args.Get(0).([]domain.Article)
	return articles, args.Error(1)
}

func (m *MockBackend) Convert(ctx context.Context, baseURL string, req domain.ConversionRequest) (domain.ConversionResult, error) {
	args := m.Called(ctx, baseURL, req)
	return args.Get(0).(domain.ConversionResult), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadCSV(ctx context.Context, baseURL, filename string, r io.Reader) (domain.UploadReceipt, error) {
	args := m.Called(ctx, baseURL, filename, r)
	return args.Get(0).(domain.UploadReceipt), args.Error(1)
}

type staticGenerator struct {
	dialogue domain.Dialogue
	keys     []int
}

func (g *staticGenerator) Generate(articleID int) domain.Dialogue {
	g.keys = append(g.keys, articleID)
	return g.dialogue
}

type fakeSource struct {
	name     string
	articles []domain.Article
	detached bool
	err      error
}

func (s fakeSource) Name() string { return s.name }

func (s fakeSource) Articles(context.Context) ([]domain.Article, error) {
	return s.articles, s.err
}

func (s fakeSource) Detached() bool { return s.detached }

func sampleArticles() []domain.Article {
	return []domain.Article{
		{ID: 0, Preview: "愛媛県で新しい観光施策が発表", Content: "愛媛県は本日..."},
		{ID: 1, Preview: "松山市でIT企業の進出が加速", Content: "松山市では..."},
	}
}
