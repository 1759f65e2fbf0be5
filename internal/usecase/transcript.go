package usecase

import "NewsToChat/internal/domain"

// BuildTranscript appends the result's turns, in order, to history.
// history itself is never modified.
func BuildTranscript(history []domain.ChatMessage, result domain.ConversionResult) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(history)+len(result.Turns))
	out = append(out, history...)
	for _, turn := range result.Turns {
		out = append(out, domain.ChatMessage{Speaker: turn.Speaker, Content: turn.Content})
	}
	return out
}

// AppendNotice appends an assistant message, e.g. a surfaced error.
func AppendNotice(history []domain.ChatMessage, content string) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(history)+1)
	out = append(out, history...)
	return append(out, domain.ChatMessage{Speaker: domain.SpeakerAssistant, Content: content})
}

// ResetTranscript returns an empty transcript.
func ResetTranscript() []domain.ChatMessage {
	return []domain.ChatMessage{}
}
