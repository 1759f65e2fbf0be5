package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/usecase"
)

func loadArticles(s *usecase.Session) tea.Cmd {
	return func() tea.Msg {
		return articlesLoadedMsg{err: s.LoadArticles(context.Background())}
	}
}

func connect(s *usecase.Session, url string) tea.Cmd {
	return func() tea.Msg {
		return connectedMsg{err: s.Connect(context.Background(), url)}
	}
}

func convertSelected(s *usecase.Session) tea.Cmd {
	return func() tea.Msg {
		return convertedMsg{err: s.ConvertSelected(context.Background())}
	}
}

func convertText(s *usecase.Session, text string, tone domain.Tone) tea.Cmd {
	return func() tea.Msg {
		return convertedMsg{err: s.ConvertText(context.Background(), text, "", tone)}
	}
}

func uploadCSV(s *usecase.Session, path string) tea.Cmd {
	return func() tea.Msg {
		receipt, err := s.UploadCSV(context.Background(), path)
		return uploadedMsg{receipt: receipt, err: err}
	}
}

func checkHealth(s *usecase.Session) tea.Cmd {
	return func() tea.Msg {
		h, err := s.Health(context.Background())
		return healthMsg{health: h, err: err}
	}
}
