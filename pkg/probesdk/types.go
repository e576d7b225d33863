package probesdk

import (
	"time"

	"github.com/aussiebroadwan/sessionprobe/pkg/inspect"
)

// InspectionResponse is the result of a session inspection.
type InspectionResponse = inspect.Result

// ItemResponse is one client-storage entry.
type ItemResponse struct {
	Profile   string    `json:"profile"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListItemsResponse lists the entries of a profile ordered by key.
type ListItemsResponse struct {
	Profile string         `json:"profile"`
	Items   []ItemResponse `json:"items"`
}

// ClearProfileResponse reports how many entries a clear removed.
type ClearProfileResponse struct {
	Profile string `json:"profile"`
	Removed int    `json:"removed"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks details the readiness of each dependency.
type HealthChecks struct {
	Storage string `json:"storage"`
}
