package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/graha/internal/report"
	"github.com/papapumpkin/graha/internal/telemetry"
)

// dataDir copies the named testdata files into a temp directory.
func dataDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestChartCommand_JSON(t *testing.T) {
	dir := dataDir(t, "sample.toml")
	out, err := execute(t, "chart", "--data-dir", dir, "--format", "json", "--at", "2000-01-01T00:00:00Z", "sample.toml")
	if err != nil {
		t.Fatalf("chart: %v", err)
	}

	var r report.Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, out)
	}
	if r.Subject.Name != "sample" {
		t.Errorf("subject = %q, want sample", r.Subject.Name)
	}
	if r.Dasha.Maha.Lord != "Mars" {
		t.Errorf("maha at 2000 = %s, want Mars", r.Dasha.Maha.Lord)
	}
	if len(r.Rasi.Bodies) != 9 {
		t.Errorf("bodies = %d, want 9", len(r.Rasi.Bodies))
	}
}

func TestChartCommand_MissingFile(t *testing.T) {
	dir := dataDir(t)
	_, err := execute(t, "chart", "--data-dir", dir, "--format", "json", "--at", "", "nope.toml")
	if err == nil || !strings.Contains(err.Error(), "nope.toml") {
		t.Errorf("chart error = %v, want missing file", err)
	}
}

func TestChartCommand_BadInstant(t *testing.T) {
	dir := dataDir(t, "sample.toml")
	_, err := execute(t, "chart", "--data-dir", dir, "--at", "yesterday", "sample.toml")
	if err == nil || !strings.Contains(err.Error(), "--at") {
		t.Errorf("chart error = %v, want --at parse failure", err)
	}
}

func TestMatchCommand_JSON(t *testing.T) {
	dir := dataDir(t, "sample.toml", "partner.toml")
	out, err := execute(t, "match", "--data-dir", dir, "--format", "json", "--at", "", "sample.toml", "partner.toml")
	if err != nil {
		t.Fatalf("match: %v", err)
	}

	var pair report.Pair
	if err := json.Unmarshal([]byte(out), &pair); err != nil {
		t.Fatalf("decoding pair: %v\n%s", err, out)
	}
	if pair.Native == nil || pair.Native.Compatibility == nil {
		t.Fatal("native report missing compatibility")
	}
	if pair.Native.Compatibility.Partner != "partner" {
		t.Errorf("partner = %q", pair.Native.Compatibility.Partner)
	}
}

func TestDashaCommand_TOML(t *testing.T) {
	dir := dataDir(t, "sample.toml")
	out, err := execute(t, "dasha", "--data-dir", dir, "--format", "toml", "--at", "1991-01-01T00:00:00Z", "--all", "sample.toml")
	if err != nil {
		t.Fatalf("dasha: %v", err)
	}

	var sec report.DashaSection
	if err := toml.Unmarshal([]byte(out), &sec); err != nil {
		t.Fatalf("decoding dasha: %v\n%s", err, out)
	}
	if sec.Maha.Lord != "Moon" {
		t.Errorf("maha = %s, want Moon", sec.Maha.Lord)
	}
	if len(sec.Timeline) != 10 {
		t.Errorf("timeline = %d entries, want 10", len(sec.Timeline))
	}
}

func TestValidateCommand(t *testing.T) {
	dir := dataDir(t, "sample.toml")
	if err := os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("[birth]\nlatitude = 95.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "validate", "--data-dir", dir, "sample.toml"); err != nil {
		t.Errorf("validate sample: %v", err)
	}
	_, err := execute(t, "validate", "--data-dir", dir, "sample.toml", "broken.toml")
	if !errors.Is(err, errInvalidObservations) {
		t.Errorf("validate error = %v, want errInvalidObservations", err)
	}
}

func TestPrintEvent(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind string
		want string
	}{
		{
			name: "full event",
			line: `{"ts":"2025-01-01T10:30:00Z","kind":"report_built","report":"0f8fad5b-d9cb-469f-a165-70867728950e","subject":"alice","data":{"yogas":3,"aspects":5}}`,
			want: "[10:30:00] report_built subject=alice report=0f8fad5b aspects=5 yogas=3\n",
		},
		{
			name: "filtered out",
			line: `{"ts":"2025-01-01T10:30:00Z","kind":"report_built"}`,
			kind: telemetry.KindWatchReload,
			want: "",
		},
		{
			name: "garbage",
			line: "not json",
			want: "??? not json\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printEvent(&buf, tt.line, tt.kind)
			if got := buf.String(); got != tt.want {
				t.Errorf("printEvent = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTelemetryCommand_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := telemetry.NewEmitter(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = em.Record(telemetry.KindChartAssembled, "r1", "alice", nil)
	_ = em.Record(telemetry.KindReportBuilt, "r1", "alice", nil)
	em.Close()

	out, err := execute(t, "telemetry", "--file", path, "--kind", telemetry.KindReportBuilt)
	if err != nil {
		t.Fatalf("telemetry: %v", err)
	}
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "report_built subject=alice") {
		t.Errorf("telemetry output = %q", out)
	}
}
