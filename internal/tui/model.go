package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/usecase"
)

// inputMode tells what the text input is currently collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputURL
	inputText
	inputUpload
)

// Model drives a usecase.Session from the terminal.
type Model struct {
	session *usecase.Session
	snap    usecase.Snapshot

	cursor  int
	mode    inputMode
	tone    domain.Tone
	input   textinput.Model
	spinner spinner.Model
	busy    bool
	notice  string

	width  int
	height int
}

// NewModel creates the model. defaultURL pre-fills the connect prompt.
func NewModel(session *usecase.Session, defaultURL string) Model {
	input := textinput.New()
	input.CharLimit = 4096
	input.Width = 60
	input.SetValue(defaultURL)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StatusStyle

	return Model{
		session: session,
		snap:    session.Snapshot(),
		input:   input,
		spinner: sp,
		busy:    true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadArticles(m.session), m.spinner.Tick)
}

func (m Model) refresh() Model {
	m.snap = m.session.Snapshot()
	if m.cursor >= len(m.snap.Articles) {
		m.cursor = max(0, len(m.snap.Articles)-1)
	}
	if m.snap.HasSelection {
		for i, a := range m.snap.Articles {
			if a.ID == m.snap.SelectedID {
				m.cursor = i
				break
			}
		}
	}
	return m
}

var tones = []domain.Tone{domain.ToneUnset, domain.ToneFrank, domain.ToneSerious, domain.ToneEducational}

func nextTone(t domain.Tone) domain.Tone {
	for i, candidate := range tones {
		if candidate == t {
			return tones[(i+1)%len(tones)]
		}
	}
	return domain.ToneUnset
}
