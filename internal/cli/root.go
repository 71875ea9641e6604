package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	MetricsFile string
	Timeout     time.Duration

	factory AppFactory
}

// NewRootCommand creates the root command for the baggage CLI.
func NewRootCommand(factory AppFactory) *cobra.Command {
	opts := &RootOptions{factory: factory}

	cmd := &cobra.Command{
		Use:           "baggage",
		Short:         "Passenger baggage records",
		Long:          "Stores and reports passenger baggage records kept in PostgreSQL.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.MetricsFile, "metrics-file", "", "write store metrics in textfile collector format to this path on exit")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "overall deadline for the command")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewChangeItemsCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

// run opens the app, runs fn and always closes the app afterwards
func (o *RootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	app, err := o.factory(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			app.Logger.Warn("Failed to close store", "error", cerr)
		}
	}()

	runErr := fn(ctx, app)

	if o.MetricsFile != "" && app.Registry != nil {
		if err := prometheus.WriteToTextfile(o.MetricsFile, app.Registry); err != nil {
			app.Logger.Error("Failed to write metrics file", "path", o.MetricsFile, "error", err)
			if runErr == nil {
				runErr = fmt.Errorf("write metrics file: %w", err)
			}
		}
	}
	return runErr
}
