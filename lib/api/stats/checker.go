package stats

import "context"

// HealthStatus follows the health check response draft: pass, warn or fail.
type HealthStatus string

const (
	StatusPass HealthStatus = "pass"
	StatusWarn HealthStatus = "warn"
	StatusFail HealthStatus = "fail"
)

var statusSeverity = map[HealthStatus]int{
	StatusPass: 0,
	StatusWarn: 1,
	StatusFail: 2,
}

// worse returns whichever of a and b is more severe.
func worse(a, b HealthStatus) HealthStatus {
	if statusSeverity[b] > statusSeverity[a] {
		return b
	}
	return a
}

type Check struct {
	Status        HealthStatus `json:"status"`
	ComponentType string       `json:"componentType,omitempty"`
	Observed      any          `json:"observedValue,omitempty"`
	ObservedAt    string       `json:"observedAt,omitempty"`
	Output        string       `json:"output,omitempty"`
}

type HealthResponse struct {
	Status    HealthStatus       `json:"status"`
	Version   string             `json:"version,omitempty"`
	ServiceID string             `json:"serviceId,omitempty"`
	Checks    map[string][]Check `json:"checks,omitempty"`
}

// Checker is one entry of the checks map.
type Checker interface {
	Name() string
	Check(ctx context.Context) Check
}
