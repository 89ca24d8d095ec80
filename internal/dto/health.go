package dto

// HealthResponse represents the response structure for health checks
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp,omitempty"`
	Environment string `json:"environment,omitempty"`
	Details     any    `json:"details,omitempty"`
}
