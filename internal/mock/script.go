package mock

import (
	"strings"

	"NewsToChat/internal/domain"
)

var scriptPrefixes = []struct {
	prefix  string
	speaker domain.Speaker
}{
	{"博士:", domain.SpeakerCharacterA},
	{"博士：", domain.SpeakerCharacterA},
	{"生徒:", domain.SpeakerCharacterB},
	{"生徒：", domain.SpeakerCharacterB},
}

// ParseScript turns "博士: ..." / "生徒: ..." lines into turns.
// Lines without a known prefix and lines with empty content are skipped.
func ParseScript(text string) []domain.Turn {
	var turns []domain.Turn
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, p := range scriptPrefixes {
			if !strings.HasPrefix(line, p.prefix) {
				continue
			}
			if content := strings.TrimSpace(strings.TrimPrefix(line, p.prefix)); content != "" {
				turns = append(turns, domain.Turn{Speaker: p.speaker, Content: content})
			}
			break
		}
	}
	return turns
}
