package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"NewsToChat/internal/domain"
)

func TestConnect_Success(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListArticles", mock.Anything, "https://x.ngrok.app").Return(sampleArticles(), nil)

	conn := NewConnection(backend, nil)
	articles, err := conn.Connect(context.Background(), "https://x.ngrok.app/")

	require.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, domain.ConnectionState{URL: "https://x.ngrok.app", Status: domain.StatusConnected}, conn.State())
	backend.AssertExpectations(t)
}

func TestConnect_StatusFailure(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListArticles", mock.Anything, "https://x.ngrok.app").
		Return(nil, domain.NewConnectivityError("backend responded with status 502", 502, nil))

	conn := NewConnection(backend, nil)
	articles, err := conn.Connect(context.Background(), "https://x.ngrok.app")

	require.Error(t, err)
	assert.Empty(t, articles)
	assert.True(t, domain.IsKind(err, domain.KindConnectivity))

	state := conn.State()
	assert.Equal(t, domain.StatusError, state.Status)
	assert.Contains(t, state.ErrorMessage, "502")
	assert.Empty(t, state.URL)
}

func TestConnect_TunnelWarningIsNotConnected(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListArticles", mock.Anything, "https://x.ngrok.app").
		Return(nil, domain.NewTunnelWarningError("backend returned an HTML page", 200))

	conn := NewConnection(backend, nil)
	_, err := conn.Connect(context.Background(), "https://x.ngrok.app")

	assert.True(t, domain.IsKind(err, domain.KindTunnelWarning))
	assert.Equal(t, domain.StatusError, conn.State().Status)
}

func TestConnect_ForeignErrorBecomesConnectivity(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListArticles", mock.Anything, "http://localhost:8000").Return(nil, errors.New("boom"))

	conn := NewConnection(backend, nil)
	_, err := conn.Connect(context.Background(), "http://localhost:8000")

	assert.True(t, domain.IsKind(err, domain.KindConnectivity))
	assert.Equal(t, "could not reach backend", conn.State().ErrorMessage)
}

func TestConnect_EmptyURL(t *testing.T) {
	backend := new(MockBackend)
	conn := NewConnection(backend, nil)

	_, err := conn.Connect(context.Background(), "   ")

	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.Equal(t, domain.DisconnectedState(), conn.State())
	backend.AssertNotCalled(t, "ListArticles", mock.Anything, mock.Anything)
}

func TestDisconnect_Idempotent(t *testing.T) {
	backend := new(MockBackend)
	backend.On("ListArticles", mock.Anything, "http://localhost:8000").Return(sampleArticles(), nil)

	conn := NewConnection(backend, nil)
	_, err := conn.Connect(context.Background(), "http://localhost:8000")
	require.NoError(t, err)

	conn.Disconnect()
	first := conn.State()
	conn.Disconnect()

	assert.Equal(t, domain.DisconnectedState(), first)
	assert.Equal(t, first, conn.State())
}

type blockingBackend struct {
	MockBackend
	release chan struct{}
}

func (b *blockingBackend) ListArticles(ctx context.Context, baseURL string) ([]domain.Article, error) {
	<-b.release
	return sampleArticles(), nil
}

func TestConnect_SupersededByDisconnect(t *testing.T) {
	backend := &blockingBackend{release: make(chan struct{})}
	conn := NewConnection(backend, nil)

	done := make(chan error, 1)
	go func() {
		_, err := conn.Connect(context.Background(), "http://localhost:8000")
		done <- err
	}()

	assert.Eventually(t, func() bool {
		return conn.State().Status == domain.StatusConnecting
	}, time.Second, time.Millisecond)

	conn.Disconnect()
	close(backend.release)

	err := <-done
	require.Error(t, err)
	assert.Equal(t, domain.DisconnectedState(), conn.State())
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://x.ngrok.app/":    "https://x.ngrok.app",
		" https://x.ngrok.app ":   "https://x.ngrok.app",
		"http://localhost:8000":   "http://localhost:8000",
		"http://localhost:8000//": "http://localhost:8000/",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeURL(in), in)
	}
}
