package api

type AnalyzeResponse struct {
	Status

	Analysis    string `json:"analysis,omitempty"`
	LetterRange string `json:"letter_range,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	Model       string `json:"model_used,omitempty"`
}

type ServiceHealthResponse struct {
	Status

	Service    string `json:"service"`
	Configured bool   `json:"api_configured"`
}
