package types

import "time"

const (
	StatusUp        = "up"
	StatusDown      = "down"
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type ComponentHealth struct {
	Status         string                 `json:"status"`
	ResponseTimeMs int64                  `json:"responseTimeMs"`
	Details        map[string]interface{} `json:"details,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

type HealthReport struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

func (r *HealthReport) Healthy() bool {
	return r.Status == StatusHealthy
}
