package mock

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsToChat/internal/domain"
)

func TestGenerateKnownIDsIsDeterministic(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	for _, id := range KnownIDs() {
		first := g.Generate(id)
		second := g.Generate(id)

		require.NotEmpty(t, first.Turns, "id %d", id)
		assert.NotEmpty(t, first.Summary, "id %d", id)
		assert.True(t, reflect.DeepEqual(first, second), "id %d differs across calls", id)
		for _, turn := range first.Turns {
			assert.True(t, turn.Speaker.IsCharacter(), "id %d has speaker %q", id, turn.Speaker)
		}
	}
}

func TestGenerateUnknownIDReturnsPlaceholder(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	for _, id := range []int{-1, 3, 999} {
		got := g.Generate(id)
		assert.Equal(t, Placeholder(), got, "id %d", id)
		assert.Len(t, got.Turns, 2)
	}
}

func TestGenerateReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	g := NewGenerator()
	first := g.Generate(1)
	first.Turns[0].Content = "changed"

	assert.NotEqual(t, "changed", g.Generate(1).Turns[0].Content)
}

func TestFallbackArticlesHaveDialogues(t *testing.T) {
	t.Parallel()

	for _, article := range Articles() {
		assert.NotEqual(t, Placeholder(), NewGenerator().Generate(article.ID), "article %d", article.ID)
		assert.NotEmpty(t, article.Preview)
		assert.NotEmpty(t, article.Content)
	}
}

func TestParseScript(t *testing.T) {
	t.Parallel()

	text := "前置き\n生徒: 何が起きたんですか？\n\n博士：新しい施策じゃ。\n博士:\n生徒：なるほど。\nナレーション: 終わり"
	turns := ParseScript(text)

	assert.Equal(t, []domain.Turn{
		{Speaker: domain.SpeakerCharacterB, Content: "何が起きたんですか？"},
		{Speaker: domain.SpeakerCharacterA, Content: "新しい施策じゃ。"},
		{Speaker: domain.SpeakerCharacterB, Content: "なるほど。"},
	}, turns)
}

func TestParseScriptEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseScript(""))
	assert.Empty(t, ParseScript("no dialogue here"))
}
