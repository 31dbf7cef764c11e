package sim

import "infracore-tile/internal/telemetry"

// StateWriter receives a snapshot after every tick. Writers re-render or
// serialize it; they never mutate simulation state.
type StateWriter interface {
	WriteState(telemetry.Snapshot) error
}

// Optional: writers may support batch mode for snapshots.
type batchStateWriter interface {
	WriteStates([]telemetry.Snapshot) error
}

// writeStates sends snaps to w, using batch mode if supported.
func writeStates(w StateWriter, snaps []telemetry.Snapshot) error {
	if bw, ok := w.(batchStateWriter); ok {
		return bw.WriteStates(snaps)
	}
	for _, s := range snaps {
		if err := w.WriteState(s); err != nil {
			return err
		}
	}
	return nil
}
