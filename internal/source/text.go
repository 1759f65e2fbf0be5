package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from pasted or syndicated article text and
// collapses runs of whitespace. Input without tags is only trimmed.
func PlainText(input string) string {
	if !strings.ContainsAny(input, "<&") {
		return strings.TrimSpace(input)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return strings.TrimSpace(input)
	}
	doc.Find("script, style").Remove()

	var paragraphs []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, "\n")
}
