package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/report"
	"github.com/papapumpkin/graha/internal/ui"
)

var chartCmd = &cobra.Command{
	Use:   "chart <observations.toml>",
	Short: "Cast a birth chart and print its full report",
	Long: `Casts the rasi and navamsa charts for an observation file and reports
placements, dignity, houses, the active Vimshottari periods, yogas and aspects.`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func init() {
	chartCmd.Flags().Bool("timeline", false, "include the full maha/antar timeline")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	at, err := evaluationInstant(cmd)
	if err != nil {
		return err
	}
	timeline, _ := cmd.Flags().GetBool("timeline")

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	req, err := rt.request(ctx, args[0])
	if err != nil {
		return err
	}
	r, err := rt.builder(report.WithTimeline(timeline)).Build(ctx, req, at)
	if err != nil {
		return err
	}
	return rt.render(cmd, r, func(p *ui.Printer) { p.Report(r) })
}
