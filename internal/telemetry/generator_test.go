package telemetry

import (
	"math/rand"
	"slices"
	"testing"
)

// seqSource replays vals in order, repeating the last one.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	if s.i >= len(s.vals) {
		return s.vals[len(s.vals)-1]
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name         string
		value, delta float64
		want         float64
	}{
		{"forced delta", 42, 5, 47},
		{"clamp high", 88, 7.5, CPUMax},
		{"clamp low", 12, -7.5, CPUMin},
		{"no change", 50, 0, 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Walk(tc.value, tc.delta, CPUMin, CPUMax); got != tc.want {
				t.Errorf("Walk(%v, %v) = %v, want %v", tc.value, tc.delta, got, tc.want)
			}
		})
	}
}

func TestMetricGeneratorClampInvariant(t *testing.T) {
	params := DefaultMetricParams()
	params.NodesJitter = 3
	gen := NewMetricGenerator(params, rand.New(rand.NewSource(7)))
	st := InitialMetrics()
	for i := 0; i < 10000; i++ {
		st = gen.Next(st)
		if st.CPULoad < CPUMin || st.CPULoad > CPUMax {
			t.Fatalf("tick %d: cpu %v out of bounds", i, st.CPULoad)
		}
		if st.MemoryLoad < MemoryMin || st.MemoryLoad > MemoryMax {
			t.Fatalf("tick %d: memory %v out of bounds", i, st.MemoryLoad)
		}
		if st.ActiveNodes < params.NodesMin || st.ActiveNodes > params.NodesMax {
			t.Fatalf("tick %d: nodes %d out of bounds", i, st.ActiveNodes)
		}
	}
}

func TestMetricGeneratorDeterministic(t *testing.T) {
	run := func() []MetricState {
		gen := NewMetricGenerator(DefaultMetricParams(), rand.New(rand.NewSource(42)))
		st := InitialMetrics()
		var out []MetricState
		for i := 0; i < 50; i++ {
			st = gen.Next(st)
			out = append(out, st)
		}
		return out
	}
	a, b := run(), run()
	if !slices.Equal(a, b) {
		t.Fatalf("expected identical sequences for the same seed")
	}
}

func TestMetricGeneratorStatusTransitions(t *testing.T) {
	// cpu, mem, warning draw, optimal draw
	tests := []struct {
		name string
		vals []float64
		from SystemStatus
		want SystemStatus
	}{
		{"warning fires", []float64{0.5, 0.5, 0.01, 0.99}, SystemOptimal, SystemWarning},
		{"optimal fires", []float64{0.5, 0.5, 0.5, 0.01}, SystemWarning, SystemOptimal},
		{"nothing fires", []float64{0.5, 0.5, 0.5, 0.5}, SystemCritical, SystemCritical},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := NewMetricGenerator(DefaultMetricParams(), &seqSource{vals: tc.vals})
			st := InitialMetrics()
			st.Status = tc.from
			next := gen.Next(st)
			if next.Status != tc.want {
				t.Errorf("status = %s, want %s", next.Status, tc.want)
			}
			// 0.5 is the midpoint of the spread so loads stay put.
			if next.CPULoad != st.CPULoad || next.MemoryLoad != st.MemoryLoad {
				t.Errorf("expected unchanged loads, got %+v", next)
			}
		})
	}
}

func TestServiceGeneratorCandidateMembership(t *testing.T) {
	for _, v := range []Variant{VariantDashboard, VariantGrid} {
		policy := PresetServicePolicy(v)
		policy.ChangeProbability = 0.5
		gen := NewServiceGenerator(policy, rand.New(rand.NewSource(3)))
		initial := PresetServices(v)
		svcs := initial
		for i := 0; i < 500; i++ {
			svcs = gen.Next(svcs)
			for j, s := range svcs {
				if s.Status == initial[j].Status && policy.IsFrozen(s.Status) {
					continue
				}
				if !slices.Contains(policy.Candidates, s.Status) && s.Status != initial[j].Status {
					t.Fatalf("%s: service %s has status %s outside candidates", v, s.Name, s.Status)
				}
			}
		}
		if len(svcs) != len(initial) {
			t.Fatalf("%s: service count changed", v)
		}
		for j := range svcs {
			if svcs[j].ID != initial[j].ID || svcs[j].Name != initial[j].Name {
				t.Fatalf("%s: service identity changed at %d", v, j)
			}
		}
	}
}

func TestServiceGeneratorInactiveNeverTransitions(t *testing.T) {
	// Every draw selects the entity and the first candidate.
	gen := NewServiceGenerator(GridServicePolicy(), &seqSource{vals: []float64{0}})
	svcs := GridServices()
	for i := 0; i < 100; i++ {
		svcs = gen.Next(svcs)
	}
	for _, s := range svcs {
		if s.Name == "Legacy" && s.Status != ServiceInactive {
			t.Fatalf("inactive service transitioned to %s", s.Status)
		}
		if s.Name != "Legacy" && s.Status != ServiceHealthy {
			t.Fatalf("expected %s forced healthy, got %s", s.Name, s.Status)
		}
	}
}

func TestServiceGeneratorDashboardMutatesInactive(t *testing.T) {
	gen := NewServiceGenerator(DashboardServicePolicy(), &seqSource{vals: []float64{0}})
	svcs := []ServiceEntity{{ID: "x", Name: "X", Status: ServiceInactive}}
	next := gen.Next(svcs)
	if next[0].Status != ServiceHealthy {
		t.Fatalf("dashboard policy should not freeze inactive, got %s", next[0].Status)
	}
	if svcs[0].Status != ServiceInactive {
		t.Fatalf("input slice was modified")
	}
}

func TestServiceGeneratorUnselectedUnchanged(t *testing.T) {
	gen := NewServiceGenerator(DashboardServicePolicy(), &seqSource{vals: []float64{0.99}})
	svcs := GridServices()
	next := gen.Next(svcs)
	if !slices.Equal(svcs, next) {
		t.Fatalf("expected no changes when no entity is selected")
	}
}

func TestSnapshotStatusCounts(t *testing.T) {
	snap := Snapshot{Services: GridServices()}
	counts := snap.StatusCounts()
	if counts[ServiceHealthy] != 9 || counts[ServiceWarning] != 1 || counts[ServiceCritical] != 1 || counts[ServiceInactive] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
