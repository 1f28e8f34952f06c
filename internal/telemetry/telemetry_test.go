package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewEmitter_CreatesFileAndDir(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "events.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter(%q): %v", path, err)
	}
	defer em.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist at %q: %v", path, err)
	}
}

func TestNewEmitter_ErrorOnBadPath(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewEmitter(filepath.Join(blocker, "events.jsonl"))
	if err == nil {
		t.Fatal("expected error for bad path, got nil")
	}
	if !strings.Contains(err.Error(), "telemetry: open") {
		t.Errorf("expected wrapped error, got: %v", err)
	}
}

func TestEmit_RoundTripsThroughReadEvents(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	events := []Event{
		{Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Kind: KindChartAssembled, ReportID: "r1", Subject: "alice"},
		{Timestamp: time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC), Kind: KindDashaSelected, ReportID: "r1", Data: map[string]string{"maha": "Venus"}},
		{Timestamp: time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC), Kind: KindReportBuilt, ReportID: "r1"},
	}
	for _, evt := range events {
		if err := em.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	decoded, err := ReadEvents(f)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(decoded) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(decoded))
	}
	for i, got := range decoded {
		if got.Kind != events[i].Kind || got.ReportID != events[i].ReportID {
			t.Errorf("event %d: got %+v, want %+v", i, got, events[i])
		}
	}
}

func TestRecord_StampsTime(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	fixed := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	em.now = func() time.Time { return fixed }

	if err := em.Record(KindYogasDetected, "r9", "bob", map[string]int{"count": 3}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	em.Close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := ReadEvents(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Timestamp.Equal(fixed) || got[0].Subject != "bob" {
		t.Errorf("Record wrote %+v", got)
	}
}

func TestReadEvents_BadLine(t *testing.T) {
	t.Parallel()
	input := `{"ts":"2025-01-01T00:00:00Z","kind":"report_built"}` + "\n\nnot json\n"
	got, err := ReadEvents(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("ReadEvents error = %v, want line 3 failure", err)
	}
	if len(got) != 1 {
		t.Errorf("expected the good event before the failure, got %d", len(got))
	}
}

func TestEmit_ConcurrentSafety(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "concurrent.jsonl")

	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func(idx int) {
			defer wg.Done()
			if err := em.Record(KindChartAssembled, "", "concurrent", map[string]int{"idx": idx}); err != nil {
				t.Errorf("Record from goroutine %d: %v", idx, err)
			}
		}(i)
	}
	wg.Wait()

	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != n {
		t.Fatalf("expected %d lines, got %d", n, len(lines))
	}
	for i, line := range lines {
		var evt Event
		if err := json.Unmarshal([]byte(line), &evt); err != nil {
			t.Errorf("line %d: invalid JSON: %v", i, err)
		}
	}
}

func TestNilEmitter_NoOp(t *testing.T) {
	t.Parallel()
	var em *Emitter

	if err := em.Emit(Event{Kind: KindReportBuilt}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if err := em.Record(KindReportBuilt, "", "", nil); err != nil {
		t.Errorf("nil Record: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestEventKinds_AreDistinct(t *testing.T) {
	t.Parallel()
	kinds := []string{
		KindChartAssembled,
		KindOracleFailure,
		KindDashaSelected,
		KindYogasDetected,
		KindCompatibilityScored,
		KindReportBuilt,
		KindWatchReload,
	}
	seen := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		if k == "" {
			t.Errorf("empty kind constant found")
		}
		if seen[k] {
			t.Errorf("duplicate kind: %q", k)
		}
		seen[k] = true
	}
}

func TestEvent_OmitsEmptyFields(t *testing.T) {
	t.Parallel()
	evt := Event{
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Kind:      KindReportBuilt,
	}
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, field := range []string{`"report"`, `"subject"`, `"data"`} {
		if strings.Contains(s, field) {
			t.Errorf("expected %s to be omitted, got: %s", field, s)
		}
	}
}
