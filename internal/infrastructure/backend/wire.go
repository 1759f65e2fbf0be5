package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"NewsToChat/internal/domain"
)

type convertPayload struct {
	ArticleID *int   `json:"article_id,omitempty"`
	Article   string `json:"article,omitempty"`
	Tone      string `json:"tone,omitempty"`
}

func newConvertPayload(req domain.ConversionRequest) convertPayload {
	if req.ArticleID != nil {
		id := *req.ArticleID
		return convertPayload{ArticleID: &id}
	}
	return convertPayload{Article: req.RawContent, Tone: string(req.Tone)}
}

type wireTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type convertResponse struct {
	Summary        string         `json:"summary"`
	Conversation   []wireTurn     `json:"conversation"`
	ProcessingTime processingTime `json:"processing_time"`
}

// processingTime accepts both "1.23 秒" and 1.23.
type processingTime string

func (p *processingTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = processingTime(s)
		return nil
	}
	var seconds float64
	if err := json.Unmarshal(b, &seconds); err != nil {
		return fmt.Errorf("processing_time: %w", err)
	}
	*p = processingTime(fmt.Sprintf("%.2f 秒", seconds))
	return nil
}

func (c *Client) toResult(resp convertResponse) domain.ConversionResult {
	turns := make([]domain.Turn, 0, len(resp.Conversation))
	for _, t := range resp.Conversation {
		speaker, ok := domain.ParseTurnSpeaker(t.Role)
		if !ok {
			c.logger.Warn("dropping turn with unknown role", "role", t.Role)
			continue
		}
		turns = append(turns, domain.Turn{Speaker: speaker, Content: t.Content})
	}

	return domain.ConversionResult{
		Summary:             resp.Summary,
		Turns:               turns,
		ProcessingTimeLabel: string(resp.ProcessingTime),
	}
}

type wireArticle struct {
	ID      int    `json:"id"`
	Preview string `json:"preview"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// decodeArticles accepts {"articles": [...]} as well as a bare list.
func decodeArticles(raw json.RawMessage) ([]domain.Article, error) {
	raw = bytes.TrimSpace(raw)

	var items []wireArticle
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	} else {
		var envelope struct {
			Articles []wireArticle `json:"articles"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, err
		}
		items = envelope.Articles
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		preview := strings.TrimSpace(item.Preview)
		if preview == "" {
			preview = strings.TrimSpace(item.Title)
		}
		if preview == "" {
			preview = domain.DerivePreview(item.Content)
		}
		articles = append(articles, domain.Article{ID: item.ID, Preview: preview, Content: item.Content})
	}
	return articles, nil
}
