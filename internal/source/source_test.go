package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/mock"
)

type stubBackend struct {
	articles []domain.Article
	err      error
	calls    int
}

func (b *stubBackend) ListArticles(context.Context, string) ([]domain.Article, error) {
	b.calls++
	return b.articles, b.err
}

func (b *stubBackend) Convert(context.Context, string, domain.ConversionRequest) (domain.ConversionResult, error) {
	return domain.ConversionResult{}, errors.New("not used")
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(StaticSource{})
	reg.Register(NewBackendSource(nil, "", nil, nil))

	src, err := reg.Resolve(StaticName)
	require.NoError(t, err)
	assert.Equal(t, StaticName, src.Name())
	assert.Equal(t, []string{BackendName, StaticName}, reg.Names())

	_, err = reg.Resolve("feed")
	assert.Error(t, err)
}

func TestBackendSourceWithoutURLUsesFallback(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{}
	got, err := NewBackendSource(backend, "", nil, nil).Articles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, mock.Articles(), got)
	assert.Zero(t, backend.calls)
}

func TestBackendSourceFailureUsesFallback(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{err: domain.NewConnectivityError("could not reach backend", 0, nil)}
	got, err := NewBackendSource(backend, "http://localhost:8000", nil, nil).Articles(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, backend.calls)
}

func TestBackendSourceSuccess(t *testing.T) {
	t.Parallel()

	want := []domain.Article{{ID: 7, Preview: "p", Content: "c"}}
	got, err := NewBackendSource(&stubBackend{articles: want}, "http://localhost:8000", nil, nil).Articles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain text", PlainText("  plain text \n"))
	assert.Equal(t, "見出し\n本文 です。", PlainText("<h1>見出し</h1>\n<p>本文   <b>です。</b></p><script>x()</script>"))
	assert.Equal(t, "A & B", PlainText("A &amp; B"))
}
