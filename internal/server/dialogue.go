package server

import (
	"fmt"
	"strings"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/mock"
	"NewsToChat/internal/ports"
)

// Composer produces the demo backend's dialogues. Articles with a canned
// conversation get it; anything else gets a short dialogue built from the text.
type Composer struct {
	canned ports.DialogueGenerator
}

func NewComposer(canned ports.DialogueGenerator) *Composer {
	if canned == nil {
		canned = mock.NewGenerator()
	}
	return &Composer{canned: canned}
}

// ForArticle composes the dialogue for a stored article.
func (c *Composer) ForArticle(article domain.Article) domain.Dialogue {
	for _, id := range mock.KnownIDs() {
		if id == article.ID && article.Content == cannedContent(id) {
			return c.canned.Generate(id)
		}
	}
	return c.ForText(article.Content, domain.ToneUnset)
}

// ForText composes the dialogue for raw article text. Text that is already a
// 博士/生徒 script is passed through.
func (c *Composer) ForText(content string, tone domain.Tone) domain.Dialogue {
	if turns := mock.ParseScript(content); len(turns) > 0 {
		return domain.Dialogue{Summary: domain.DerivePreview(spoken(turns)), Turns: turns}
	}

	sentences := splitSentences(content)
	summary := domain.DerivePreview(content)
	if len(sentences) > 0 {
		summary = sentences[0]
	}

	turns := []domain.Turn{
		{Speaker: domain.SpeakerCharacterB, Content: opening(tone)},
		{Speaker: domain.SpeakerCharacterA, Content: summary},
	}
	for _, s := range sentences[min(1, len(sentences)):] {
		turns = append(turns,
			domain.Turn{Speaker: domain.SpeakerCharacterB, Content: "それから、どうなったのですか？"},
			domain.Turn{Speaker: domain.SpeakerCharacterA, Content: s},
		)
	}
	turns = append(turns, domain.Turn{Speaker: domain.SpeakerCharacterB, Content: "よく分かりました。ありがとうございます！"})

	return domain.Dialogue{Summary: summary, Turns: turns}
}

func opening(tone domain.Tone) string {
	switch tone {
	case domain.ToneFrank:
		return "ねえ博士、このニュースってどんな話？"
	case domain.ToneSerious:
		return "博士、このニュースの要点を教えていただけますか。"
	case domain.ToneEducational:
		return "博士、このニュースから何を学べるのでしょうか？"
	default:
		return "博士、このニュースについて教えてください。"
	}
}

func splitSentences(text string) []string {
	var out []string
	for _, part := range strings.SplitAfter(strings.TrimSpace(text), "。") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func spoken(turns []domain.Turn) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, t.Content)
	}
	return strings.Join(parts, " ")
}

func cannedContent(id int) string {
	if a, ok := domain.FindArticle(mock.Articles(), id); ok {
		return a.Content
	}
	return ""
}

func processingLabel(seconds float64) string {
	return fmt.Sprintf("%.2f 秒", seconds)
}
