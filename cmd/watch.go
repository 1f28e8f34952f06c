package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/graha/internal/telemetry"
	"github.com/papapumpkin/graha/internal/ui"
	"github.com/papapumpkin/graha/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <observations.toml>",
	Short: "Re-cast a chart whenever its observation file changes",
	Long: `Prints the chart report, then watches the observation file and prints a
fresh report after every settled change. With --metrics-addr, serves
Prometheus metrics while watching.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("metrics-addr", "", "serve /metrics on this address while watching")
	_ = viper.BindPFlag("metrics_addr", watchCmd.Flags().Lookup("metrics-addr"))
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	at, err := evaluationInstant(cmd)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	path, err := rt.session.Resolve(args[0])
	if err != nil {
		return err
	}
	name := trimExt(filepath.Base(path))
	printer := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())

	w, err := watch.New(filepath.Dir(path))
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	g, ctx := errgroup.WithContext(cmd.Context())
	if addr := rt.cfg.MetricsAddr; addr != "" {
		g.Go(func() error {
			return rt.metrics.Serve(ctx, addr, rt.logger)
		})
	}
	g.Go(func() error {
		// Initial report; a broken file is reported and watched like any other.
		if err := castAndRender(ctx, cmd, rt, path, at); err != nil {
			printer.Error(err.Error())
		}
		printer.Info(fmt.Sprintf("watching %s", path))
		for {
			select {
			case <-ctx.Done():
				return nil
			case c, ok := <-w.Changes:
				if !ok {
					return nil
				}
				if c.Name != name {
					continue
				}
				handleChange(ctx, cmd, rt, printer, c, at)
			}
		}
	})
	return g.Wait()
}

func handleChange(ctx context.Context, cmd *cobra.Command, rt *runtime, printer *ui.Printer, c watch.Change, at time.Time) {
	printer.Reloaded(c.Name, c.Kind.String())
	data := map[string]any{"file": c.File, "change": c.Kind.String()}
	if c.Err != nil {
		data["error"] = c.Err.Error()
	}
	if err := rt.emitter.Record(telemetry.KindWatchReload, "", c.Name, data); err != nil {
		rt.logger.Warn("telemetry write failed", zap.Error(err))
	}

	switch c.Kind {
	case watch.ChangeRemoved:
		printer.Info("file removed; waiting for it to return")
	case watch.ChangeInvalid:
		printer.Invalid(c.File, c.Err)
	case watch.ChangeModified:
		rt.releaseCaches()
		if err := castAndRender(ctx, cmd, rt, c.File, at); err != nil {
			printer.Error(err.Error())
		}
	}
}

func castAndRender(ctx context.Context, cmd *cobra.Command, rt *runtime, path string, at time.Time) error {
	req, err := rt.request(ctx, path)
	if err != nil {
		return err
	}
	r, err := rt.builder().Build(ctx, req, at)
	if err != nil {
		return err
	}
	return rt.render(cmd, r, func(p *ui.Printer) { p.Report(r) })
}
