package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/utils"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the baggage tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				if err := app.Store.InitializeSchema(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
				return nil
			})
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	var flight, name, weights string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a passenger baggage record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := utils.ParseWeights(weights)
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				record := entity.NewBaggageRecord(flight, name, ws)
				if err := app.Manager.AddRecord(ctx, record); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s / %s: %d item(s), %.2f kg\n",
					strings.TrimSpace(flight), strings.TrimSpace(name), record.ItemCount(), record.TotalWeight())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flight, "flight", "", "flight number, e.g. SU1234")
	cmd.Flags().StringVar(&name, "name", "", "passenger full name")
	cmd.Flags().StringVar(&weights, "weights", "", "item weights in kg, e.g. \"12.5,8\"")
	_ = cmd.MarkFlagRequired("flight")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("weights")
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete FLIGHT...",
		Short: "Delete every record of the given flight numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flights := utils.ParseFlightNumbers(args...)
			if len(flights) == 0 {
				return errors.New("no flight numbers given")
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				deleted, err := app.Manager.DeleteByFlightNumbers(ctx, flights)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d record(s)\n", deleted)
				return nil
			})
		},
	}
}

// NewChangeItemsCommand creates the change-items command.
func NewChangeItemsCommand(opts *RootOptions) *cobra.Command {
	var name, weights string

	cmd := &cobra.Command{
		Use:   "change-items",
		Short: "Replace the items of a passenger's record",
		Long:  "Replace the items of the first record (lowest id) whose passenger name matches exactly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := utils.ParseWeights(weights)
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				if err := app.Manager.ChangeItems(ctx, name, ws); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "items of %s replaced: %d item(s)\n", strings.TrimSpace(name), len(ws))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "passenger full name")
	cmd.Flags().StringVar(&weights, "weights", "", "new item weights in kg")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("weights")
	return cmd
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	var flight, name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, optionally by flight number or passenger name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flight != "" && name != "" {
				return errors.New("--flight and --name are mutually exclusive")
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				var (
					records []entity.BaggageRecord
					err     error
				)
				switch {
				case flight != "":
					records, err = app.Store.FindByFlightNumber(ctx, flight)
				case name != "":
					records, err = app.Store.FindByPassengerName(ctx, name)
				default:
					err = app.Manager.Refresh(ctx)
					records = app.Manager.Records()
				}
				if err != nil {
					return err
				}
				return writeRecords(cmd.OutOrStdout(), records)
			})
		},
	}

	cmd.Flags().StringVar(&flight, "flight", "", "exact flight number")
	cmd.Flags().StringVar(&name, "name", "", "exact passenger name")
	return cmd
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(opts *RootOptions) *cobra.Command {
	var low, high float64

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List passengers with a single item whose weight is within the bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				records, err := app.Manager.FilterSingleItem(ctx, low, high)
				if err != nil {
					return err
				}
				return writeRecords(cmd.OutOrStdout(), records)
			})
		},
	}

	cmd.Flags().Float64Var(&low, "low", repository.DefaultFilterLow, "inclusive lower weight bound in kg")
	cmd.Flags().Float64Var(&high, "high", repository.DefaultFilterHigh, "inclusive upper weight bound in kg")
	return cmd
}

// NewCountCommand creates the count command.
func NewCountCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				n, err := app.Store.Count(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all records without --yes")
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				if err := app.Manager.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "all records deleted")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion of all records")
	return cmd
}

func writeRecords(w io.Writer, records []entity.BaggageRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFLIGHT\tPASSENGER\tITEMS\tWEIGHTS\tTOTAL")
	for _, r := range records {
		weights := make([]string, 0, len(r.ItemWeights))
		for _, wt := range r.ItemWeights {
			weights = append(weights, strconv.FormatFloat(wt, 'f', -1, 64))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%.2f\n",
			r.ID, r.FlightNumber, r.PassengerName, r.ItemCount(), strings.Join(weights, ","), r.TotalWeight())
	}
	return tw.Flush()
}
