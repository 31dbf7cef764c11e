package sim

import (
	"encoding/json"
	"fmt"
	"io"

	"infracore-tile/internal/telemetry"
)

// JSONWriter prints snapshots as JSON lines.
type JSONWriter struct {
	out io.Writer
}

// NewJSONWriter creates a JSONWriter writing to out.
func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out}
}

// WriteState outputs a snapshot in JSON format.
func (w *JSONWriter) WriteState(s telemetry.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// WriteStates outputs multiple snapshots in JSON format.
func (w *JSONWriter) WriteStates(snaps []telemetry.Snapshot) error {
	for _, s := range snaps {
		if err := w.WriteState(s); err != nil {
			return err
		}
	}
	return nil
}
