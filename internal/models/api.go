package models

// HealthResponse reports service status plus basic host metrics.
type HealthResponse struct {
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// InfoResponse describes the API and its configured providers.
type InfoResponse struct {
	Name      string                 `json:"name"`
	Version   string                 `json:"version"`
	Features  map[string]interface{} `json:"features"`
	Endpoints map[string]string      `json:"endpoints"`
}

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
