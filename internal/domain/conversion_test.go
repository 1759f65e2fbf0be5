package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionRequestValidate(t *testing.T) {
	t.Parallel()

	both := NewArticleRequest(1)
	both.RawContent = "text"

	cases := []struct {
		name    string
		req     ConversionRequest
		wantErr bool
	}{
		{"article id", NewArticleRequest(0), false},
		{"text", NewTextRequest("本文", "", ToneFrank), false},
		{"neither", ConversionRequest{}, true},
		{"whitespace text", NewTextRequest("   \n", "title", ToneUnset), true},
		{"both", both, true},
		{"bad tone", NewTextRequest("本文", "", Tone("angry")), true},
	}

	for _, tc := range cases {
		err := tc.req.Validate()
		if tc.wantErr {
			require.Error(t, err, tc.name)
			assert.True(t, IsKind(err, KindValidation), tc.name)
			continue
		}
		assert.NoError(t, err, tc.name)
	}
}

func TestMockKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, NewArticleRequest(7).MockKey())
	assert.Equal(t, -1, NewTextRequest("x", "", ToneUnset).MockKey())
}

func TestParseTurnSpeaker(t *testing.T) {
	t.Parallel()

	s, ok := ParseTurnSpeaker("character_a")
	assert.True(t, ok)
	assert.Equal(t, SpeakerCharacterA, s)

	s, ok = ParseTurnSpeaker("生徒")
	assert.True(t, ok)
	assert.Equal(t, SpeakerCharacterB, s)

	_, ok = ParseTurnSpeaker("user")
	assert.False(t, ok)
}

func TestParseTone(t *testing.T) {
	t.Parallel()

	tone, err := ParseTone(" Serious ")
	require.NoError(t, err)
	assert.Equal(t, ToneSerious, tone)

	tone, err = ParseTone("")
	require.NoError(t, err)
	assert.Equal(t, ToneUnset, tone)

	_, err = ParseTone("loud")
	assert.Error(t, err)
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	t.Parallel()

	base := NewConnectivityError("backend responded with status 502", 502, nil)
	wrapped := fmt.Errorf("convert: %w", base)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindConnectivity, kind)
	assert.True(t, base.Recoverable())

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	assert.False(t, NewValidationError("x", nil).Recoverable())
	assert.Contains(t, NewTunnelWarningError("html", 200).Remediation(), "ngrok-skip-browser-warning")
}

func TestDerivePreview(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "短い本文", DerivePreview("  短い本文 "))

	long := "あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほまみむめも"
	got := DerivePreview(long)
	assert.Equal(t, "あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほ...", got)
}
