package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"NewsToChat/internal/app"
	"NewsToChat/internal/config"
	"NewsToChat/internal/logging"
	"NewsToChat/internal/tui"
)

func main() {
	cfg := config.Load()

	logger, closeLog, err := logging.NewFile(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		logger.Error("cannot start session", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("session started", "session", session.ID(), "source", cfg.Sources.Default, "default_backend", cfg.Backend.DefaultURL)

	program := tea.NewProgram(tui.NewModel(session, cfg.Backend.DefaultURL), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("terminal ui stopped", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
