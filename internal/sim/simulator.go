// Simulator owning one tile's state and its periodic ticks
package sim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"infracore-tile/internal/config"
	"infracore-tile/internal/logging"
	"infracore-tile/internal/telemetry"
)

// Simulator owns the metric and service state of a single tile. The metric
// task and the service task each mutate only their own slice of state.
type Simulator struct {
	tileID     string
	variant    telemetry.Variant
	cfg        *config.TileConfig
	metricGen  *telemetry.MetricGenerator
	serviceGen *telemetry.ServiceGenerator
	writer     StateWriter
	sched      *Scheduler
	now        func() time.Time

	metricSrc  telemetry.Source
	serviceSrc telemetry.Source

	// pubMu orders publication so writers never see an older snapshot
	// after a newer one.
	pubMu sync.Mutex

	mu           sync.Mutex
	metrics      telemetry.MetricState
	services     []telemetry.ServiceEntity
	metricTicks  int
	serviceTicks int
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithSources injects the random sources used by the metric and service
// generators. They must not be shared between goroutines.
func WithSources(metric, service telemetry.Source) Option {
	return func(s *Simulator) {
		s.metricSrc = metric
		s.serviceSrc = service
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithTileID sets a fixed tile identifier instead of a random uuid.
func WithTileID(id string) Option {
	return func(s *Simulator) { s.tileID = id }
}

// NewSimulator initializes a tile from config. writer may be nil.
func NewSimulator(cfg *config.TileConfig, writer StateWriter, opts ...Option) *Simulator {
	s := &Simulator{
		tileID:   uuid.New().String(),
		variant:  cfg.TileVariant(),
		cfg:      cfg,
		writer:   writer,
		now:      time.Now,
		metrics:  telemetry.InitialMetrics(),
		services: cfg.ServiceEntities(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metricSrc == nil || s.serviceSrc == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		// Separate streams keep each task's sequence independent of timer interleaving.
		s.metricSrc = rand.New(rand.NewSource(seed))
		s.serviceSrc = rand.New(rand.NewSource(seed + 1))
	}
	s.metricGen = telemetry.NewMetricGenerator(cfg.MetricParams(), s.metricSrc)
	s.serviceGen = telemetry.NewServiceGenerator(cfg.ServicePolicy(), s.serviceSrc)

	tasks := []Task{{Name: "services", Period: cfg.Services.Interval, Run: s.StepServices}}
	if s.variant == telemetry.VariantDashboard {
		tasks = append([]Task{{Name: "metrics", Period: cfg.Metrics.Interval, Run: s.StepMetrics}}, tasks...)
	}
	s.sched = NewScheduler(tasks...)
	return s
}

// TileID returns the identifier of this tile instance.
func (s *Simulator) TileID() string { return s.tileID }

// Variant returns the mounted tile variant.
func (s *Simulator) Variant() telemetry.Variant { return s.variant }

// Mount publishes the initial state and registers the periodic tasks.
func (s *Simulator) Mount(ctx context.Context) error {
	log := logging.FromContext(ctx)
	if err := s.sched.Start(ctx); err != nil {
		return err
	}
	policy := s.serviceGen.Policy()
	log.Info("tile mounted", "tile_id", s.tileID, "variant", s.variant,
		"metric_interval", s.cfg.Metrics.Interval, "service_interval", s.cfg.Services.Interval,
		"change_probability", policy.ChangeProbability, "frozen", policy.Frozen)
	s.pubMu.Lock()
	s.publish(ctx, s.Snapshot())
	s.pubMu.Unlock()
	return nil
}

// Unmount cancels every task and waits for in-flight ticks to finish. No
// state changes or writer callbacks happen after it returns.
func (s *Simulator) Unmount() {
	s.sched.Stop()
}

// Mounted reports whether the periodic tasks are registered.
func (s *Simulator) Mounted() bool {
	return s.sched.Running()
}

// Snapshot returns a copy of the current state.
func (s *Simulator) Snapshot() telemetry.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Simulator) snapshotLocked() telemetry.Snapshot {
	svcs := make([]telemetry.ServiceEntity, len(s.services))
	copy(svcs, s.services)
	return telemetry.Snapshot{
		TileID:       s.tileID,
		Variant:      s.variant,
		Metrics:      s.metrics,
		Services:     svcs,
		MetricTicks:  s.metricTicks,
		ServiceTicks: s.serviceTicks,
		Timestamp:    s.now().UTC(),
	}
}
