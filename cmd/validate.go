package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/graha/internal/ephemeris"
	"github.com/papapumpkin/graha/internal/ui"
)

// errInvalidObservations is returned when any file fails validation.
var errInvalidObservations = errors.New("invalid observation files")

var validateCmd = &cobra.Command{
	Use:   "validate <observations.toml>...",
	Short: "Check observation files without casting charts",
	Long: `Parses each observation file and reports every problem found: a missing
birth time, an out-of-range latitude, or a body without an entry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())
	failed := 0
	for _, name := range args {
		path, err := rt.session.Resolve(name)
		if err != nil {
			return err
		}
		obs, err := ephemeris.LoadObservations(path)
		if err != nil {
			failed++
			printer.Invalid(path, err)
			continue
		}
		printer.Valid(path, obs.Birth.Name, obs.Birth.Time)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidObservations, failed, len(args))
	}
	return nil
}
