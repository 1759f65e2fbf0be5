package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"NewsToChat/internal/usecase"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(20, msg.Width-10)
		return m, nil
	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.handleInputKey(msg)
		}
		return m.handleKeyPress(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case articlesLoadedMsg:
		m.busy = false
		m = m.refresh()
		if msg.err != nil {
			m.notice = msg.err.Error()
		}
		return m, nil
	case connectedMsg:
		m.busy = false
		m = m.refresh()
		if msg.err == nil {
			m.notice = fmt.Sprintf("connected to %s (%d articles)", m.snap.Connection.URL, len(m.snap.Articles))
		} else {
			m.notice = ""
		}
		return m, nil
	case convertedMsg:
		m.busy = false
		m = m.refresh()
		m.notice = ""
		return m, nil
	case uploadedMsg:
		m.busy = false
		m = m.refresh()
		if msg.err == nil {
			m.notice = fmt.Sprintf("%s (%d articles)", msg.receipt.Message, msg.receipt.ArticlesCount)
		}
		return m, nil
	case healthMsg:
		m.busy = false
		if msg.err != nil {
			m.notice = "health check failed: " + msg.err.Error()
		} else {
			m.notice = fmt.Sprintf("backend %s, model loaded: %t, articles: %d",
				msg.health.Status, msg.health.ModelLoaded, msg.health.ArticlesCount)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		return m.moveCursor(-1), nil
	case "down", "j":
		return m.moveCursor(1), nil
	case "c":
		return m.openInput(inputURL, "https://xxxx.ngrok-free.app", m.snap.Connection.URL), nil
	case "t":
		return m.openInput(inputText, "記事本文を貼り付けてください", ""), nil
	case "u":
		return m.openInput(inputUpload, "articles.csv", ""), nil
	case "o":
		m.tone = nextTone(m.tone)
		return m, nil
	case "d":
		m.session.Disconnect()
		m = m.refresh()
		m.notice = "disconnected"
		m.busy = true
		return m, loadArticles(m.session)
	case "r":
		m.session.Reset()
		m = m.refresh()
		m.notice = ""
		return m, nil
	case "h":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, checkHealth(m.session)
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, convertSelected(m.session)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = inputNone
		m.input.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()
		if value == "" || m.busy {
			return m, nil
		}
		m.busy = true
		switch mode {
		case inputURL:
			return m, connect(m.session, value)
		case inputText:
			return m, convertText(m.session, value, m.tone)
		case inputUpload:
			return m, uploadCSV(m.session, value)
		default:
			m.busy = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openInput(mode inputMode, placeholder, value string) Model {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m Model) moveCursor(delta int) Model {
	if len(m.snap.Articles) == 0 {
		return m
	}
	m.cursor = (m.cursor + delta + len(m.snap.Articles)) % len(m.snap.Articles)
	if err := m.session.Select(m.snap.Articles[m.cursor].ID); err != nil {
		m.notice = err.Error()
	}
	m.snap = m.session.Snapshot()
	return m
}

// Snapshot exposes the last rendered session state.
func (m Model) Snapshot() usecase.Snapshot {
	return m.snap
}
