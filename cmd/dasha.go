package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/report"
	"github.com/papapumpkin/graha/internal/ui"
)

var dashaCmd = &cobra.Command{
	Use:   "dasha <observations.toml>",
	Short: "Show the active Vimshottari periods",
	Long: `Prints the maha, antar and pratyantar periods active at --at (default now).
With --all, prints every maha period from birth with its antar periods.`,
	Args: cobra.ExactArgs(1),
	RunE: runDasha,
}

func init() {
	dashaCmd.Flags().Bool("all", false, "print the full timeline")
	rootCmd.AddCommand(dashaCmd)
}

func runDasha(cmd *cobra.Command, args []string) error {
	at, err := evaluationInstant(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")

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
	r, err := rt.builder(report.WithTimeline(all)).Build(ctx, req, at)
	if err != nil {
		return err
	}
	return rt.render(cmd, r.Dasha, func(p *ui.Printer) { p.Timeline(r) })
}
