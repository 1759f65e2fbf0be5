package domain

import (
	"fmt"
	"strings"
)

// Speaker identifies who utters a chat message.
type Speaker string

const (
	SpeakerUser       Speaker = "user"
	SpeakerAssistant  Speaker = "assistant"
	SpeakerCharacterA Speaker = "character_a"
	SpeakerCharacterB Speaker = "character_b"
)

// ParseTurnSpeaker maps an upstream role onto one of the two dialogue characters.
// Some backends label turns with the character names instead of the role ids.
func ParseTurnSpeaker(role string) (Speaker, bool) {
	switch strings.TrimSpace(role) {
	case string(SpeakerCharacterA), "博士":
		return SpeakerCharacterA, true
	case string(SpeakerCharacterB), "生徒":
		return SpeakerCharacterB, true
	default:
		return "", false
	}
}

// IsCharacter reports whether the speaker is one of the two dialogue roles.
func (s Speaker) IsCharacter() bool {
	switch s {
	case SpeakerCharacterA, SpeakerCharacterB:
		return true
	case SpeakerUser, SpeakerAssistant:
		return false
	default:
		return false
	}
}

// Tone selects the register of the generated dialogue for free-text requests.
type Tone string

const (
	ToneUnset       Tone = ""
	ToneFrank       Tone = "frank"
	ToneSerious     Tone = "serious"
	ToneEducational Tone = "educational"
)

// ParseTone accepts an empty string as "no preference".
func ParseTone(value string) (Tone, error) {
	switch Tone(strings.ToLower(strings.TrimSpace(value))) {
	case ToneUnset:
		return ToneUnset, nil
	case ToneFrank:
		return ToneFrank, nil
	case ToneSerious:
		return ToneSerious, nil
	case ToneEducational:
		return ToneEducational, nil
	default:
		return ToneUnset, NewValidationError(fmt.Sprintf("unknown tone %q", value), nil)
	}
}

// ConversionRequest carries either an article id or raw article text, never both.
type ConversionRequest struct {
	ArticleID  *int
	RawContent string
	Title      string
	Tone       Tone
}

// NewArticleRequest targets an article the backend already knows about.
func NewArticleRequest(id int) ConversionRequest {
	return ConversionRequest{ArticleID: &id}
}

// NewTextRequest targets user-supplied article text.
func NewTextRequest(content, title string, tone Tone) ConversionRequest {
	return ConversionRequest{RawContent: content, Title: title, Tone: tone}
}

// Validate enforces the one-of shape of the request.
func (r ConversionRequest) Validate() error {
	hasText := strings.TrimSpace(r.RawContent) != ""
	switch {
	case r.ArticleID != nil && hasText:
		return NewValidationError("request must carry either an article id or article text, not both", nil)
	case r.ArticleID == nil && !hasText:
		return NewValidationError("no article selected and no article text given", nil)
	}
	if _, err := ParseTone(string(r.Tone)); err != nil {
		return err
	}
	return nil
}

// MockKey returns the identity used to pick a fallback dialogue.
// Free-text requests have no stable identity and map to the generic placeholder.
func (r ConversionRequest) MockKey() int {
	if r.ArticleID != nil {
		return *r.ArticleID
	}
	return -1
}

// Turn is one utterance in the two-character dialogue.
type Turn struct {
	Speaker Speaker
	Content string
}

// ConversionResult is the normalized outcome of a conversion.
type ConversionResult struct {
	Summary             string
	Turns               []Turn
	ProcessingTimeLabel string
	// Degraded marks results produced locally instead of by the backend.
	Degraded bool
}

// ChatMessage is a single entry of the session transcript.
type ChatMessage struct {
	Speaker Speaker
	Content string
}
