package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pfet/finance-core/internal/config"
	"github.com/pfet/finance-core/internal/ledger"
	"github.com/pfet/finance-core/internal/output"
	"github.com/pfet/finance-core/pkg/dateutil"
	"github.com/spf13/cobra"
)

type ledgerOptions struct {
	path string
	user string
	asOf string
}

// now returns the evaluation instant: midnight UTC of the --as-of day, or the current time.
func (o ledgerOptions) now() (time.Time, error) {
	if o.asOf == "" {
		return time.Now(), nil
	}
	day, err := dateutil.ParseDate(o.asOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of: %w", err)
	}
	return day, nil
}

func newDashboardCmd(a *app, use, section, short string) *cobra.Command {
	var opts ledgerOptions

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(opts.user)
			if err != nil {
				return fmt.Errorf("--user: invalid id %q: %w", opts.user, err)
			}
			now, err := opts.now()
			if err != nil {
				return err
			}

			snap, err := config.LoadSnapshot(opts.path)
			if err != nil {
				return err
			}
			book := ledger.NewBook(a.logger)
			book.SetClock(func() time.Time { return now })
			if err := book.Import(*snap); err != nil {
				return fmt.Errorf("ledger %s: %w", opts.path, err)
			}

			dash, err := book.Dashboard(cmd.Context(), userID, now)
			if err != nil {
				return err
			}
			return a.render(cmd, output.DashboardReport(dash).Only(section))
		},
	}

	cmd.Flags().StringVarP(&opts.path, "ledger", "l", "", "ledger YAML file")
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "user id")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "evaluate as of this date (YYYY-MM-DD, default now)")
	_ = cmd.MarkFlagRequired("ledger")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
