package domain

// Dialogue is a summary plus the turns explaining it.
type Dialogue struct {
	Summary string
	Turns   []Turn
}

// Health mirrors the backend's readiness report.
type Health struct {
	Status        string `json:"status"`
	ModelLoaded   bool   `json:"model_loaded"`
	ArticlesCount int    `json:"articles_count"`
}

// UploadReceipt acknowledges an accepted CSV upload.
type UploadReceipt struct {
	Message       string `json:"message"`
	ArticlesCount int    `json:"articles_count"`
}
