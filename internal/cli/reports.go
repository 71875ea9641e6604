package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"baggage-service/pkg/utils"

	"github.com/spf13/cobra"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(opts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Write flight number, passenger name and total weight of every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				text, err := app.Manager.Summary(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, out, text)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write; stdout when empty")
	return cmd
}

// NewReportCommand creates the report command.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	var from, to, out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the report of records created within a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromTime, err := utils.ParseDateTime(from, time.UTC)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			toTime, err := utils.ParsePeriodEnd(to, time.UTC)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				text, n, err := app.Manager.DateRangeReport(ctx, fromTime, toTime)
				if err != nil {
					return err
				}
				app.Logger.Debug("Report built", "records", n)
				return emit(cmd, out, text)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start of period, e.g. \"01.10.2026 00:00\" (UTC)")
	cmd.Flags().StringVar(&to, "to", "", "end of period, inclusive (UTC); a date alone means the end of that day")
	cmd.Flags().StringVarP(&out, "out", "o", "", "file to write; stdout when empty")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func emit(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "written to %s\n", path)
	return nil
}
