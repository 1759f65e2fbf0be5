package domain

import (
	"strings"
	"unicode/utf8"
)

const previewRunes = 30

// Article is a single news item that can be rendered as a dialogue.
type Article struct {
	ID      int    `json:"id"`
	Preview string `json:"preview"`
	Content string `json:"content"`
}

// DerivePreview builds a headline from the body when the source has none.
func DerivePreview(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= previewRunes {
		return content
	}
	runes := []rune(content)
	return string(runes[:previewRunes]) + "..."
}

// FindArticle returns the article with the given id.
func FindArticle(articles []Article, id int) (Article, bool) {
	for _, a := range articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}
