// Simulated tile state shared by the simulator, writers and renderer
package telemetry

import "time"

// SystemStatus is the overall tile health shown in the header badge.
type SystemStatus string

// System status constants.
const (
	SystemOptimal  SystemStatus = "optimal"
	SystemWarning  SystemStatus = "warning"
	SystemCritical SystemStatus = "critical"
)

// ServiceStatus is the health of one mock microservice.
type ServiceStatus string

// Service status constants.
const (
	ServiceHealthy  ServiceStatus = "healthy"
	ServiceWarning  ServiceStatus = "warning"
	ServiceCritical ServiceStatus = "critical"
	ServiceInactive ServiceStatus = "inactive"
)

// Variant selects which tile is mounted.
type Variant string

// Tile variants.
const (
	VariantDashboard Variant = "dashboard"
	VariantGrid      Variant = "grid"
)

// Load bounds enforced after every metric tick.
const (
	CPUMin    = 10.0
	CPUMax    = 90.0
	MemoryMin = 20.0
	MemoryMax = 80.0
)

// MetricState holds the simulated load figures of a tile.
type MetricState struct {
	CPULoad     float64      `json:"cpu_load"`
	MemoryLoad  float64      `json:"memory_load"`
	ActiveNodes int          `json:"active_nodes"`
	Status      SystemStatus `json:"status"`
}

// InitialMetrics returns the state a freshly mounted tile starts from.
func InitialMetrics() MetricState {
	return MetricState{
		CPULoad:     42,
		MemoryLoad:  30,
		ActiveNodes: 124,
		Status:      SystemOptimal,
	}
}

// ServiceEntity is a named mock microservice. Only Status ever changes.
type ServiceEntity struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Icon   string        `json:"icon,omitempty"`
	Status ServiceStatus `json:"status"`
}

// Snapshot is an immutable copy of a tile's state at one point in time.
type Snapshot struct {
	TileID       string          `json:"tile_id"`
	Variant      Variant         `json:"variant"`
	Metrics      MetricState     `json:"metrics"`
	Services     []ServiceEntity `json:"services"`
	MetricTicks  int             `json:"metric_ticks"`
	ServiceTicks int             `json:"service_ticks"`
	Timestamp    time.Time       `json:"ts"`
}

// StatusCounts tallies services per status.
func (s Snapshot) StatusCounts() map[ServiceStatus]int {
	counts := make(map[ServiceStatus]int, 4)
	for _, svc := range s.Services {
		counts[svc.Status]++
	}
	return counts
}
