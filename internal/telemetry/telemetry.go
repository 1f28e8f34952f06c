// Package telemetry provides a JSONL event stream for recording what graha
// computed. Every chart assembly, oracle failure, period selection and
// report is recorded as a structured JSON event, so runs can be audited and
// replayed.
package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindChartAssembled      = "chart_assembled"
	KindOracleFailure       = "oracle_failure"
	KindDashaSelected       = "dasha_selected"
	KindYogasDetected       = "yogas_detected"
	KindCompatibilityScored = "compatibility_scored"
	KindReportBuilt         = "report_built"
	KindWatchReload         = "watch_reload"
)

// Event represents a single telemetry record. Each event carries a timestamp,
// a kind tag, and optional context identifiers (report, subject) along with
// arbitrary structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	ReportID  string    `json:"report,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file and its parent directory are created if needed; an
// existing file is appended to.
func NewEmitter(path string) (*Emitter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
		now:  time.Now,
	}, nil
}

// Emit writes a single event to the JSONL file. It is safe for concurrent use.
// Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Record stamps and emits an event.
func (e *Emitter) Record(kind, reportID, subject string, data any) error {
	if e == nil {
		return nil
	}
	return e.Emit(Event{
		Timestamp: e.now().UTC(),
		Kind:      kind,
		ReportID:  reportID,
		Subject:   subject,
		Data:      data,
	})
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}

// ReadEvents decodes every non-empty line of r as an Event.
func ReadEvents(r io.Reader) ([]Event, error) {
	var out []Event
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			return out, fmt.Errorf("telemetry: line %d: %w", line, err)
		}
		out = append(out, evt)
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("telemetry: read: %w", err)
	}
	return out, nil
}
