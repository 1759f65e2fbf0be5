package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsToChat/internal/mock"
	"NewsToChat/internal/source"
	"NewsToChat/internal/usecase"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	session := usecase.NewSession(usecase.SessionDeps{
		Connection:   usecase.NewConnection(nil, nil),
		Orchestrator: usecase.NewOrchestrator(usecase.OrchestratorConfig{}, nil, mock.NewGenerator(), nil),
		Source:       source.StaticSource{},
	})
	m := NewModel(session, "")

	next, _ := m.Update(loadArticles(session)())
	return next.(Model)
}

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLoadsArticles(t *testing.T) {
	m := newTestModel(t)

	assert.False(t, m.busy)
	assert.Len(t, m.Snapshot().Articles, 3)
	assert.Contains(t, m.View(), "愛媛県で新しい観光施策が発表")
}

func TestModelConvertAndReset(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Snapshot().SelectedID)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	next, _ := m.Update(cmd())
	m = next.(Model)
	snap := m.Snapshot()
	assert.True(t, snap.Degraded)
	assert.NotEmpty(t, snap.Transcript)
	assert.Contains(t, m.View(), usecase.MockModeMarker)

	m, _ = press(t, m, runes("r"))
	assert.Empty(t, m.Snapshot().Transcript)
	assert.Len(t, m.Snapshot().Articles, 3)
}

func TestModelCursorWraps(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, 2, m.Snapshot().SelectedID)
}

func TestModelInputCancel(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("c"))
	assert.Equal(t, inputURL, m.mode)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, inputNone, m.mode)
	assert.False(t, m.busy)
}

func TestModelToneCycles(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("o"))
	assert.Equal(t, "frank", string(m.tone))
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
