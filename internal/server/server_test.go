package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/infrastructure/backend"
	"NewsToChat/internal/mock"
)

func newTestServer(opts Options) *Server {
	return New(NewArticleStore(mock.Articles()), NewComposer(nil), opts, nil)
}

func TestArticlesAndHealth(t *testing.T) {
	t.Parallel()

	h := newTestServer(Options{}).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Articles []articleJSON `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Articles, 3)
	assert.Equal(t, "愛媛県で新しい観光施策が発表", body.Articles[0].Preview)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"healthy","model_loaded":false,"articles_count":3}`, rec.Body.String())
}

func TestConvertByID(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(`{"article_id": 2}`))
	req.Header.Set("Content-Type", "application/json")
	newTestServer(Options{}).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp convertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, mock.NewGenerator().Generate(2).Summary, resp.Summary)
	assert.Contains(t, resp.ProcessingTime, "秒")
	for _, turn := range resp.Conversation {
		assert.Contains(t, []string{"character_a", "character_b"}, turn.Role)
	}
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		body string
		code int
	}{
		"unknown id":   {body: `{"article_id": 99}`, code: http.StatusNotFound},
		"empty":        {body: `{}`, code: http.StatusBadRequest},
		"bad tone":     {body: `{"article": "本文。", "tone": "angry"}`, code: http.StatusBadRequest},
		"invalid json": {body: `{`, code: http.StatusBadRequest},
	}
	h := newTestServer(Options{}).Handler()
	for name, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.code, rec.Code, name)
	}
}

func TestUploadReplacesArticles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "articles.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("midasi,honbun\n見出しA,本文Aです。\n,見出しのない本文です。\n,\n"))
	require.NoError(t, mw.Close())

	srv := newTestServer(Options{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []domain.Article{
		{ID: 0, Preview: "見出しA", Content: "本文Aです。"},
		{ID: 1, Preview: "見出しのない本文です。", Content: "見出しのない本文です。"},
	}, srv.store.List())
}

func TestUploadWithoutFile(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestServer(Options{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadCSVRequiresBodyColumn(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("title,text\na,b\n"))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestComposerForText(t *testing.T) {
	t.Parallel()

	c := NewComposer(nil)

	d := c.ForText("一文目です。二文目です。", domain.ToneFrank)
	assert.Equal(t, "一文目です。", d.Summary)
	assert.Equal(t, "ねえ博士、このニュースってどんな話？", d.Turns[0].Content)
	assert.Equal(t, "二文目です。", d.Turns[3].Content)
	assert.Equal(t, domain.SpeakerCharacterB, d.Turns[len(d.Turns)-1].Speaker)

	script := c.ForText("博士：こんにちは\n生徒：はい", domain.ToneUnset)
	assert.Equal(t, []domain.Turn{
		{Speaker: domain.SpeakerCharacterA, Content: "こんにちは"},
		{Speaker: domain.SpeakerCharacterB, Content: "はい"},
	}, script.Turns)
}

func TestTunnelSimulationWithClient(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(newTestServer(Options{SimulateTunnelWarning: true}).Handler())
	defer ts.Close()

	withHeader := backend.NewClientWithHTTP(ts.Client(), true, nil)
	articles, err := withHeader.ListArticles(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Len(t, articles, 3)

	result, err := withHeader.Convert(context.Background(), ts.URL, domain.NewArticleRequest(0))
	require.NoError(t, err)
	assert.NotEmpty(t, result.Turns)

	withoutHeader := backend.NewClientWithHTTP(ts.Client(), false, nil)
	_, err = withoutHeader.ListArticles(context.Background(), ts.URL)
	assert.True(t, domain.IsKind(err, domain.KindTunnelWarning))
}

type fakeSource struct {
	articles []domain.Article
	err      error
}

func (fakeSource) Name() string { return "fake" }

func (f fakeSource) Articles(context.Context) ([]domain.Article, error) {
	return f.articles, f.err
}

func TestStoreRefreshFrom(t *testing.T) {
	t.Parallel()

	store := NewArticleStore(mock.Articles())

	_, err := store.RefreshFrom(context.Background(), fakeSource{err: assert.AnError})
	assert.Error(t, err)
	_, err = store.RefreshFrom(context.Background(), fakeSource{})
	assert.Error(t, err)
	assert.Equal(t, 3, store.Len())

	n, err := store.RefreshFrom(context.Background(), fakeSource{articles: []domain.Article{{ID: 0, Preview: "p", Content: "c"}}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, store.Len())
}
