package sim

import (
	"context"

	"infracore-tile/internal/logging"
	"infracore-tile/internal/telemetry"
)

// StepMetrics advances the load metrics by one tick and publishes the result.
func (s *Simulator) StepMetrics(ctx context.Context) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.mu.Lock()
	prev := s.metrics
	s.metrics = s.metricGen.Next(prev)
	s.metricTicks++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if prev.Status != snap.Metrics.Status {
		logging.FromContext(ctx).Debug("system status flipped", "tile_id", s.tileID,
			"from", prev.Status, "to", snap.Metrics.Status)
	}
	s.publish(ctx, snap)
}

// StepServices advances the service grid by one tick and publishes the result.
func (s *Simulator) StepServices(ctx context.Context) {
	log := logging.FromContext(ctx)
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.mu.Lock()
	prev := s.services
	s.services = s.serviceGen.Next(prev)
	s.serviceTicks++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	for i := range prev {
		if prev[i].Status != snap.Services[i].Status {
			log.Debug("service status changed", "tile_id", s.tileID, "service", prev[i].Name,
				"from", prev[i].Status, "to", snap.Services[i].Status)
		}
	}
	s.publish(ctx, snap)
}

// Advance steps both simulators n times without timers and returns every
// intermediate snapshot. Services tick once per metric tick.
func (s *Simulator) Advance(ctx context.Context, n int) []telemetry.Snapshot {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	out := make([]telemetry.Snapshot, 0, n)
	for i := 0; i < n; i++ {
		s.mu.Lock()
		if s.variant == telemetry.VariantDashboard {
			s.metrics = s.metricGen.Next(s.metrics)
			s.metricTicks++
		}
		s.services = s.serviceGen.Next(s.services)
		s.serviceTicks++
		out = append(out, s.snapshotLocked())
		s.mu.Unlock()
	}
	if s.writer != nil && len(out) > 0 {
		if err := writeStates(s.writer, out); err != nil {
			logging.FromContext(ctx).Error("state batch write failed", "tile_id", s.tileID, "err", err)
		}
	}
	return out
}

func (s *Simulator) publish(ctx context.Context, snap telemetry.Snapshot) {
	if s.writer == nil {
		return
	}
	if err := s.writer.WriteState(snap); err != nil {
		logging.FromContext(ctx).Error("state write failed", "tile_id", s.tileID, "err", err)
	}
}
