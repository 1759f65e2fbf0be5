package tui

import "NewsToChat/internal/domain"

type articlesLoadedMsg struct {
	err error
}

type connectedMsg struct {
	err error
}

type convertedMsg struct {
	err error
}

type uploadedMsg struct {
	receipt domain.UploadReceipt
	err     error
}

type healthMsg struct {
	health domain.Health
	err    error
}
