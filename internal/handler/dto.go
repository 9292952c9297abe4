package handler

type AnalyzeCountryRequest struct {
	Country *string `json:"country"`
}

type AnalysisResponse struct {
	Country     string  `json:"country"`
	Sector      string  `json:"sector"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	ImagePrompt string  `json:"imagePrompt"`
}

// ErrorResponse is the body of every 4xx/5xx. Status is the upstream HTTP
// status code, or "Unknown" when no response was received.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Status  any    `json:"status,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
