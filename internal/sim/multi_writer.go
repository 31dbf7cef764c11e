package sim

import (
	"errors"

	"infracore-tile/internal/telemetry"
)

// MultiWriter fans out snapshots to multiple writers.
type MultiWriter struct {
	writers []StateWriter
}

// NewMultiWriter creates a new MultiWriter. Nil writers are skipped.
func NewMultiWriter(ws ...StateWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range ws {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// WriteState sends a snapshot to every writer. All writers are attempted even
// if one fails.
func (mw *MultiWriter) WriteState(s telemetry.Snapshot) error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.WriteState(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteStates sends multiple snapshots to every writer, using batch if supported.
func (mw *MultiWriter) WriteStates(snaps []telemetry.Snapshot) error {
	var errs []error
	for _, w := range mw.writers {
		if err := writeStates(w, snaps); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
