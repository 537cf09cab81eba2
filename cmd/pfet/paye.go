package main

import (
	"fmt"

	"github.com/pfet/finance-core/internal/calculation"
	"github.com/pfet/finance-core/internal/config"
	"github.com/pfet/finance-core/internal/domain"
	"github.com/pfet/finance-core/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalValue adapts a decimal.Decimal to a command line flag.
type decimalValue struct{ d *decimal.Decimal }

func (v decimalValue) Type() string { return "decimal" }

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*v.d = d
	return nil
}

type rulesOptions struct {
	path string
	year int
}

func (o *rulesOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.path, "rules", "", "tax rules YAML file; overrides PFET_TAX_RULES (default: built-in 2024 tables)")
	cmd.Flags().IntVar(&o.year, "year", 0, "tax year to apply; overrides PFET_TAX_YEAR (default: latest in the rules)")
}

// resolve picks the tax rules from flags, then settings, then the built-in tables.
func (o *rulesOptions) resolve(a *app) (domain.TaxRules, error) {
	path, year := o.path, o.year
	if path == "" {
		path = a.settings.TaxRulesPath
	}
	if year == 0 {
		year = a.settings.TaxYear
	}

	if path == "" {
		builtin := calculation.KenyaTaxRules2024()
		if year != 0 && year != builtin.Year {
			return domain.TaxRules{}, fmt.Errorf("%w: %d (built-in tables cover %d; pass --rules)", domain.ErrUnknownTaxYear, year, builtin.Year)
		}
		return builtin, nil
	}

	file, err := config.LoadTaxRules(path)
	if err != nil {
		return domain.TaxRules{}, err
	}
	if year == 0 {
		return file.Latest(), nil
	}
	return file.ForYear(year)
}

func newPAYECmd(a *app) *cobra.Command {
	var (
		input domain.PAYEInput
		rules rulesOptions
	)

	cmd := &cobra.Command{
		Use:   "paye",
		Short: "Compute PAYE, statutory deductions and net pay for a monthly salary",
		Example: `  pfet paye --gross 100000
  pfet paye --gross 150000 --pension 10000 --insurance 5000 --rules tax_rules.yaml --year 2024 -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			taxRules, err := rules.resolve(a)
			if err != nil {
				return err
			}
			calc, err := calculation.NewPAYECalculator(taxRules, a.logger)
			if err != nil {
				return err
			}

			result, err := calc.CalculateNetSalary(input)
			if err != nil {
				return err
			}
			a.logger.Debugw("payslip computed", "year", result.TaxYear, "gross", result.GrossSalary, "net", result.NetSalary)
			return a.render(cmd, output.PAYEReport(&result))
		},
	}

	cmd.Flags().Var(decimalValue{&input.GrossSalary}, "gross", "monthly gross salary (KES)")
	cmd.Flags().Var(decimalValue{&input.Allowances}, "allowances", "non-taxable allowances")
	cmd.Flags().Var(decimalValue{&input.Benefits}, "benefits", "taxable benefits in kind")
	cmd.Flags().Var(decimalValue{&input.Pension}, "pension", "pre-tax pension contribution")
	cmd.Flags().Var(decimalValue{&input.Insurance}, "insurance", "insurance premium eligible for relief")
	cmd.Flags().BoolVar(&input.Disability, "disability", false, "apply the disability exemption")
	_ = cmd.MarkFlagRequired("gross")
	rules.bind(cmd)

	return cmd
}

func newRulesCmd(a *app) *cobra.Command {
	var rules rulesOptions

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the tax years and PAYE bands available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var years []domain.TaxRules
			path := rules.path
			if path == "" {
				path = a.settings.TaxRulesPath
			}
			if path == "" {
				years = []domain.TaxRules{calculation.KenyaTaxRules2024()}
			} else {
				file, err := config.LoadTaxRules(path)
				if err != nil {
					return err
				}
				years = file.TaxYears
			}

			w := cmd.OutOrStdout()
			for _, r := range years {
				fmt.Fprintf(w, "Tax year %d: personal relief %s, housing levy %s\n",
					r.Year, output.FormatCurrency(r.PersonalRelief), output.FormatPercentage(r.HousingLevyRate.Shift(2)))
				for _, band := range r.PAYEBands {
					fmt.Fprintf(w, "  %-28s %s\n", calculation.BandLabel(band), output.FormatPercentage(band.Rate.Shift(2)))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rules.path, "rules", "", "tax rules YAML file (default: built-in 2024 tables)")
	return cmd
}
