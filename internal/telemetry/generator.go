package telemetry

import (
	"math"
	"slices"
)

// Source supplies uniformly distributed values in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Transition flips the system status to To with the given per-tick probability.
type Transition struct {
	To          SystemStatus
	Probability float64
}

// MetricParams configures the bounded random walk of a MetricState.
type MetricParams struct {
	CPUSpread    float64 // width of the uniform CPU delta, centered on zero
	MemorySpread float64
	NodesJitter  int
	NodesMin     int
	NodesMax     int
	Transitions  []Transition
}

// DefaultMetricParams mirrors the stock tile: ±7.5 CPU, ±5 memory, static nodes.
func DefaultMetricParams() MetricParams {
	return MetricParams{
		CPUSpread:    15,
		MemorySpread: 10,
		NodesMin:     1,
		NodesMax:     512,
		Transitions: []Transition{
			{To: SystemWarning, Probability: 0.02},
			{To: SystemOptimal, Probability: 0.05},
		},
	}
}

// MetricGenerator advances a MetricState by one tick.
type MetricGenerator struct {
	params MetricParams
	rnd    Source
}

// NewMetricGenerator creates a generator drawing from rnd.
func NewMetricGenerator(params MetricParams, rnd Source) *MetricGenerator {
	return &MetricGenerator{params: params, rnd: rnd}
}

// Next returns the state following prev. Loads are clamped to their bounds and
// the status may flip regardless of load.
func (g *MetricGenerator) Next(prev MetricState) MetricState {
	next := prev
	next.CPULoad = Walk(prev.CPULoad, uniformDelta(g.rnd, g.params.CPUSpread), CPUMin, CPUMax)
	next.MemoryLoad = Walk(prev.MemoryLoad, uniformDelta(g.rnd, g.params.MemorySpread), MemoryMin, MemoryMax)

	if g.params.NodesJitter > 0 {
		d := int(math.Round(uniformDelta(g.rnd, float64(2*g.params.NodesJitter))))
		next.ActiveNodes = clampInt(prev.ActiveNodes+d, g.params.NodesMin, g.params.NodesMax)
	}

	// First transition that fires wins; each draws independently.
	for _, tr := range g.params.Transitions {
		if g.rnd.Float64() < tr.Probability {
			next.Status = tr.To
			break
		}
	}
	return next
}

// Walk applies delta to value and clamps the result to [lo, hi].
func Walk(value, delta, lo, hi float64) float64 {
	return math.Min(math.Max(value+delta, lo), hi)
}

func uniformDelta(rnd Source, spread float64) float64 {
	return rnd.Float64()*spread - spread/2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ServicePolicy controls how a service grid mutates on each tick.
type ServicePolicy struct {
	ChangeProbability float64
	// Candidates may repeat a status to weight the draw.
	Candidates []ServiceStatus
	// Frozen statuses never transition.
	Frozen []ServiceStatus
}

// DashboardServicePolicy is the mutation policy of the dashboard tile.
func DashboardServicePolicy() ServicePolicy {
	return ServicePolicy{
		ChangeProbability: 0.05,
		Candidates:        []ServiceStatus{ServiceHealthy, ServiceHealthy, ServiceWarning, ServiceCritical},
	}
}

// GridServicePolicy is the mutation policy of the microservices grid tile.
func GridServicePolicy() ServicePolicy {
	return ServicePolicy{
		ChangeProbability: 0.05,
		Candidates:        []ServiceStatus{ServiceHealthy, ServiceHealthy, ServiceHealthy, ServiceWarning, ServiceCritical},
		Frozen:            []ServiceStatus{ServiceInactive},
	}
}

// IsFrozen reports whether status is exempt from mutation.
func (p ServicePolicy) IsFrozen(status ServiceStatus) bool {
	return slices.Contains(p.Frozen, status)
}

// ServiceGenerator advances a service list by one tick.
type ServiceGenerator struct {
	policy ServicePolicy
	rnd    Source
}

// NewServiceGenerator creates a generator drawing from rnd.
func NewServiceGenerator(policy ServicePolicy, rnd Source) *ServiceGenerator {
	return &ServiceGenerator{policy: policy, rnd: rnd}
}

// Policy returns the generator's mutation policy.
func (g *ServiceGenerator) Policy() ServicePolicy {
	return g.policy
}

// Next returns a new slice where each entity independently may have had its
// status replaced. prev is not modified.
func (g *ServiceGenerator) Next(prev []ServiceEntity) []ServiceEntity {
	next := make([]ServiceEntity, len(prev))
	copy(next, prev)
	if len(g.policy.Candidates) == 0 {
		return next
	}
	for i := range next {
		if g.rnd.Float64() >= g.policy.ChangeProbability {
			continue
		}
		idx := int(g.rnd.Float64() * float64(len(g.policy.Candidates)))
		if idx >= len(g.policy.Candidates) {
			idx = len(g.policy.Candidates) - 1
		}
		if g.policy.IsFrozen(next[i].Status) {
			continue
		}
		next[i].Status = g.policy.Candidates[idx]
	}
	return next
}
