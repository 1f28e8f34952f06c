package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/ui"
)

var matchCmd = &cobra.Command{
	Use:   "match <native.toml> <partner.toml>",
	Short: "Score kuta compatibility between two charts",
	Long: `Casts both charts concurrently, reports each, and scores the eight kuta
factors of each native against the other (maximum 36 points).`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	at, err := evaluationInstant(cmd)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	native, err := rt.request(ctx, args[0])
	if err != nil {
		return err
	}
	partner, err := rt.request(ctx, args[1])
	if err != nil {
		return err
	}
	pair, err := rt.builder().Match(ctx, native, partner, at)
	if err != nil {
		return err
	}
	return rt.render(cmd, pair, func(p *ui.Printer) { p.Pair(pair) })
}
