package entity

import "time"

const (
	ComponentDatabase = "database"
	ComponentRedis    = "redis"
)

// HealthCheck is the last recorded check result for one component.
type HealthCheck struct {
	Component     string
	Status        string
	Details       string
	LastCheckedAt time.Time
}
