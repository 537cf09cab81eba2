package main

import (
	"fmt"
	"time"

	"github.com/pfet/finance-core/internal/config"
	"github.com/pfet/finance-core/internal/observability"
	"github.com/pfet/finance-core/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand.
type app struct {
	envFile  string
	logLevel string
	format   string
	saveDir  string

	settings config.Settings
	logger   *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "pfet",
		Short:        "Kenyan payslip, budget, loan and savings goal calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "env file with PFET_* settings")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides PFET_LOG_LEVEL")
	flags.StringVarP(&a.format, "format", "f", "console", fmt.Sprintf("output format: %v", output.AvailableFormatterNames()))
	flags.StringVar(&a.saveDir, "save", "", "also write the report to a timestamped file in this directory")

	cmd.AddCommand(
		newPAYECmd(a),
		newRulesCmd(a),
		newDashboardCmd(a, "dashboard", "", "Summarise budgets, loans and goals for one user"),
		newDashboardCmd(a, "budgets", "budgets", "Show spend against each budget for the current period"),
		newDashboardCmd(a, "loans", "loans", "Show loan balances, accrued interest and due dates"),
		newDashboardCmd(a, "goals", "goals", "Show progress and required savings pace for each goal"),
	)
	return cmd
}

func (a *app) setup() error {
	settings, err := config.LoadSettings(a.envFile)
	if err != nil {
		return err
	}
	a.settings = settings

	level := settings.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	logger, err := observability.NewLogger(level)
	if err != nil {
		return err
	}
	a.logger = logger.Sugar()
	a.logger.Debugw("settings loaded", "tax_rules", settings.TaxRulesPath, "tax_year", settings.TaxYear)
	return nil
}

// render formats report to stdout and, with --save, to a file.
func (a *app) render(cmd *cobra.Command, report *output.Report) error {
	f, err := output.LookupFormatter(a.format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	if a.saveDir == "" {
		return nil
	}
	path, err := output.WriteFormatted(f, report, a.saveDir, time.Now())
	if err != nil {
		return err
	}
	a.logger.Infow("report saved", "path", path, "format", f.Name())
	return nil
}
