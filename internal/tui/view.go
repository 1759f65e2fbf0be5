package tui

import (
	"fmt"
	"strings"

	"NewsToChat/internal/domain"
	"NewsToChat/internal/usecase"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("News-to-Chat"))
	b.WriteString("\n")
	b.WriteString(m.connectionLine())
	b.WriteString("\n\n")

	b.WriteString(BoxStyle.Render(m.articlesView()))
	b.WriteString("\n")

	if m.snap.Summary != "" {
		b.WriteString(BoxStyle.Render("要約: " + m.snap.Summary))
		b.WriteString("\n")
	}
	if len(m.snap.Transcript) > 0 {
		b.WriteString(m.transcriptView())
		b.WriteString("\n")
	}
	if m.snap.ProcessingTimeLabel != "" {
		style := InfoStyle
		if m.snap.Degraded {
			style = WarningStyle
		}
		b.WriteString(style.Render("処理時間: " + m.snap.ProcessingTimeLabel))
		b.WriteString("\n")
	}

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " 処理中...")
	case m.snap.LastError != "":
		b.WriteString(ErrorStyle.Render(m.snap.LastError))
	case m.notice != "":
		b.WriteString(InfoStyle.Render(m.notice))
	}
	b.WriteString("\n\n")

	if m.mode != inputNone {
		b.WriteString(inputLabel(m.mode) + m.input.View())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("enter: submit • esc: cancel"))
	} else {
		b.WriteString(InfoStyle.Render(fmt.Sprintf(
			"↑/↓: select • enter: convert • t: paste text (tone: %s) • o: tone • c: connect • d: disconnect • u: upload • h: health • r: reset • q: quit",
			toneLabel(m.tone))))
	}
	return b.String()
}

func (m Model) connectionLine() string {
	conn := m.snap.Connection
	switch conn.Status {
	case domain.StatusConnected:
		return StatusStyle.Render("● connected: " + conn.URL)
	case domain.StatusConnecting:
		return WarningStyle.Render("● connecting...")
	case domain.StatusError:
		return ErrorStyle.Render("● connection error: " + conn.ErrorMessage)
	case domain.StatusDisconnected:
		return InfoStyle.Render("○ not connected (" + usecase.MockModeMarker + " when no backend answers)")
	default:
		return ""
	}
}

func (m Model) articlesView() string {
	if len(m.snap.Articles) == 0 {
		return InfoStyle.Render("記事がありません")
	}
	lines := make([]string, 0, len(m.snap.Articles))
	for i, a := range m.snap.Articles {
		line := fmt.Sprintf("%2d. %s", a.ID, a.Preview)
		if i == m.cursor {
			line = SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) transcriptView() string {
	lines := make([]string, 0, len(m.snap.Transcript))
	for _, msg := range m.snap.Transcript {
		lines = append(lines, speakerLabel(msg.Speaker)+" "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

func speakerLabel(s domain.Speaker) string {
	switch s {
	case domain.SpeakerCharacterA:
		return DoctorStyle.Render("博士:")
	case domain.SpeakerCharacterB:
		return StudentStyle.Render("生徒:")
	case domain.SpeakerAssistant:
		return WarningStyle.Render("システム:")
	case domain.SpeakerUser:
		return InfoStyle.Render("あなた:")
	default:
		return string(s) + ":"
	}
}

func inputLabel(mode inputMode) string {
	switch mode {
	case inputURL:
		return "Backend URL: "
	case inputText:
		return "Article: "
	case inputUpload:
		return "CSV path: "
	default:
		return ""
	}
}

func toneLabel(t domain.Tone) string {
	if t == domain.ToneUnset {
		return "default"
	}
	return string(t)
}
