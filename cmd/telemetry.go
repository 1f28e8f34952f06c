package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/config"
	"github.com/papapumpkin/graha/internal/telemetry"
)

var errNoTelemetryPath = errors.New("telemetry: no file given and telemetry_path is not configured")

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "View JSONL telemetry events",
	Long: `Reads and formats the JSONL telemetry file named by --file or the
telemetry_path setting.

With --follow (-f), watches the file for new events (like tail -f).
With --kind, prints only events of that kind.`,
	RunE: runTelemetry,
}

func init() {
	telemetryCmd.Flags().String("file", "", "telemetry file (default: telemetry_path setting)")
	telemetryCmd.Flags().String("kind", "", "only print events of this kind")
	telemetryCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	rootCmd.AddCommand(telemetryCmd)
}

func runTelemetry(cmd *cobra.Command, _ []string) error {
	follow, _ := cmd.Flags().GetBool("follow")
	kind, _ := cmd.Flags().GetString("kind")

	path, err := resolveTelemetryPath(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	// Print all existing events. The reader is shared with tailFollow so
	// following resumes exactly where the backlog ended.
	reader := bufio.NewReader(f)
	if err := printLines(out, reader, kind); err != nil {
		return fmt.Errorf("telemetry: read %s: %w", path, err)
	}

	if !follow {
		return nil
	}
	return tailFollow(cmd.Context(), out, reader, path, kind)
}

// printLines prints every complete line available from r.
func printLines(w io.Writer, r *bufio.Reader, kind string) error {
	for {
		line, err := r.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			printEvent(w, line, kind)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// tailFollow watches the file for new data using fsnotify and prints new
// events until ctx is done.
func tailFollow(ctx context.Context, w io.Writer, r *bufio.Reader, path, kind string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("telemetry: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("telemetry: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if err := printLines(w, r, kind); err != nil {
				return fmt.Errorf("telemetry: read %s: %w", path, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("telemetry: watch %s: %w", path, err)
		}
	}
}

// printEvent decodes a JSONL line and prints a human-readable representation.
// When kind is set, events of other kinds are skipped.
func printEvent(w io.Writer, line, kind string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}
	if kind != "" && evt.Kind != kind {
		return
	}

	parts := []string{
		fmt.Sprintf("[%s]", evt.Timestamp.Format(time.TimeOnly)),
		evt.Kind,
	}
	if evt.Subject != "" {
		parts = append(parts, fmt.Sprintf("subject=%s", evt.Subject))
	}
	if evt.ReportID != "" {
		parts = append(parts, fmt.Sprintf("report=%s", shortID(evt.ReportID)))
	}
	if evt.Data != nil {
		if m, ok := evt.Data.(map[string]any); ok {
			parts = append(parts, formatDataMap(m))
		} else {
			data, _ := json.Marshal(evt.Data)
			parts = append(parts, string(data))
		}
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

// shortID trims a UUID to its first group.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// formatDataMap formats a data map as key=value pairs sorted by key.
func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	return b.String()
}

// resolveTelemetryPath returns --file, falling back to the configured
// telemetry_path.
func resolveTelemetryPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return path, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.TelemetryPath == "" {
		return "", errNoTelemetryPath
	}
	return cfg.TelemetryPath, nil
}
