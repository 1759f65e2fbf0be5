package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
)

// SkipWarningHeader asks tunnel proxies to skip their browser interstitial.
const SkipWarningHeader = "ngrok-skip-browser-warning"

const (
	maxErrorBody = 1024
	maxHTMLBody  = 64 * 1024
)

// Client talks to a conversion backend over HTTP.
type Client struct {
	http        *http.Client
	skipWarning bool
	logger      *slog.Logger
}

var (
	_ ports.Backend       = (*Client)(nil)
	_ ports.HealthChecker = (*Client)(nil)
	_ ports.Uploader      = (*Client)(nil)
)

// NewClient creates a client whose requests give up after timeout.
func NewClient(timeout time.Duration, skipWarning bool, logger *slog.Logger) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: timeout}, skipWarning, logger)
}

// NewClientWithHTTP wires a caller-provided http.Client.
func NewClientWithHTTP(httpClient *http.Client, skipWarning bool, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{http: httpClient, skipWarning: skipWarning, logger: logger}
}

// ListArticles fetches GET {baseURL}/articles.
func (c *Client) ListArticles(ctx context.Context, baseURL string) ([]domain.Article, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, baseURL+"/articles", nil, "", &raw); err != nil {
		return nil, err
	}

	articles, err := decodeArticles(raw)
	if err != nil {
		return nil, domain.NewUpstreamError("backend returned a malformed article list", err)
	}
	c.logger.Debug("articles listed", "base_url", baseURL, "count", len(articles))
	return articles, nil
}

// Convert posts the request to {baseURL}/convert and maps the reply.
func (c *Client) Convert(ctx context.Context, baseURL string, req domain.ConversionRequest) (domain.ConversionResult, error) {
	body, err := json.Marshal(newConvertPayload(req))
	if err != nil {
		return domain.ConversionResult{}, fmt.Errorf("marshal convert payload: %w", err)
	}

	var resp convertResponse
	if err := c.do(ctx, http.MethodPost, baseURL+"/convert", bytes.NewReader(body), "application/json", &resp); err != nil {
		return domain.ConversionResult{}, err
	}

	return c.toResult(resp), nil
}

// Health fetches GET {baseURL}/health.
func (c *Client) Health(ctx context.Context, baseURL string) (domain.Health, error) {
	var h domain.Health
	if err := c.do(ctx, http.MethodGet, baseURL+"/health", nil, "", &h); err != nil {
		return domain.Health{}, err
	}
	return h, nil
}

// UploadCSV posts a CSV file as multipart field "file" to {baseURL}/upload.
func (c *Client) UploadCSV(ctx context.Context, baseURL, filename string, r io.Reader) (domain.UploadReceipt, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("copy csv: %w", err)
	}
	if err := mw.Close(); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("close multipart writer: %w", err)
	}

	var receipt domain.UploadReceipt
	if err := c.do(ctx, http.MethodPost, baseURL+"/upload", &buf, mw.FormDataContentType(), &receipt); err != nil {
		return domain.UploadReceipt{}, err
	}
	return receipt, nil
}

// do sends the request and classifies the response. An HTML body always wins over
// the status code: it means a proxy page answered instead of the API.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader, contentType string, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return domain.NewConnectivityError(fmt.Sprintf("invalid backend url %q", url), 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.skipWarning {
		req.Header.Set(SkipWarningHeader, "true")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return domain.NewConnectivityError("backend request timed out", 0, err)
		}
		return domain.NewConnectivityError("could not reach backend", 0, err)
	}
	defer resp.Body.Close()

	if IsHTML(resp.Header.Get("Content-Type")) {
		return tunnelWarning(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var cause error
		if text := strings.TrimSpace(string(detail)); text != "" {
			cause = errors.New(text)
		}
		return domain.NewConnectivityError(fmt.Sprintf("backend responded with status %d", resp.StatusCode), resp.StatusCode, cause)
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return domain.NewUpstreamError("backend returned malformed JSON", err)
	}
	return nil
}

// IsHTML reports whether a Content-Type header denotes an HTML document.
func IsHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html")
}

func tunnelWarning(resp *http.Response) error {
	msg := "backend returned an HTML page instead of JSON; a tunnel warning page is probably intercepting requests"
	if title := pageTitle(io.LimitReader(resp.Body, maxHTMLBody)); title != "" {
		msg = fmt.Sprintf("%s (page title %q)", msg, title)
	}
	return domain.NewTunnelWarningError(msg, resp.StatusCode)
}

func pageTitle(r io.Reader) string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	return title
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
