package output

import (
	"bytes"
	"fmt"

	"github.com/pfet/finance-core/internal/domain"
	"github.com/pfet/finance-core/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const rule = "================================================================"

// ConsoleFormatter renders a human readable report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	if report.PAYE != nil {
		writePAYE(&buf, report.PAYE)
		return buf.Bytes(), nil
	}

	fmt.Fprintf(&buf, "PERSONAL FINANCE DASHBOARD (%s)\n", dateutil.FormatDate(report.GeneratedAt))
	fmt.Fprintln(&buf, rule)
	if report.Budgets != nil {
		writeBudgets(&buf, report.Budgets)
	}
	if report.Loans != nil {
		writeLoans(&buf, report.Loans)
	}
	if report.Goals != nil {
		writeGoals(&buf, report.Goals)
	}
	return buf.Bytes(), nil
}

func writePAYE(buf *bytes.Buffer, r *domain.PAYEResult) {
	line := func(label string, amount decimal.Decimal) {
		fmt.Fprintf(buf, "%-22s %20s\n", label+":", FormatCurrency(amount))
	}

	fmt.Fprintf(buf, "PAYSLIP BREAKDOWN (tax year %d)\n", r.TaxYear)
	fmt.Fprintln(buf, rule)
	line("Gross Salary", r.GrossSalary)
	if r.Allowances.IsPositive() {
		line("Allowances", r.Allowances)
	}
	if r.Benefits.IsPositive() {
		line("Benefits", r.Benefits)
	}
	line("Taxable Income", r.TaxableIncome)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "TAX BY BAND")
	for _, b := range r.TaxByBand {
		fmt.Fprintf(buf, "  %-28s %6s  on %16s = %16s\n",
			b.Band, b.Rate.String()+"%", FormatCurrency(b.TaxableAmount), FormatCurrency(b.Tax))
	}
	line("Gross Tax", r.GrossTax)
	line("Personal Relief", r.PersonalRelief)
	if r.InsuranceRelief.IsPositive() {
		line("Insurance Relief", r.InsuranceRelief)
	}
	line("PAYE", r.PAYE)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "DEDUCTIONS")
	line("PAYE", r.PAYE)
	line("NHIF", r.NHIF)
	line("NSSF", r.NSSF)
	line("Housing Levy", r.HousingLevy)
	if r.Pension.IsPositive() {
		line("Pension", r.Pension)
	}
	line("Total Deductions", r.TotalDeductions)
	fmt.Fprintln(buf, rule)
	line("NET SALARY", r.NetSalary)
}

func writeBudgets(buf *bytes.Buffer, o *domain.BudgetOverview) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "BUDGETS")
	if len(o.Budgets) == 0 {
		fmt.Fprintln(buf, "  (none)")
	}
	for _, b := range o.Budgets {
		fmt.Fprintf(buf, "  %-18s %-9s %16s of %16s  %7s%s\n",
			b.CategoryName, b.Period, FormatCurrency(b.Spent), FormatCurrency(b.Amount),
			FormatPercentage(b.Percentage), budgetFlag(b))
	}
	fmt.Fprintf(buf, "  Monthly budgeted: %s  Spent this period: %s  Alerts: %d\n",
		FormatCurrency(o.TotalBudgeted), FormatCurrency(o.TotalSpent), len(o.Alerts))
}

func budgetFlag(b domain.BudgetSpendResult) string {
	switch {
	case b.IsOverBudget:
		return "  OVER BUDGET"
	case b.IsNearLimit:
		return "  near limit"
	}
	return ""
}

func writeLoans(buf *bytes.Buffer, o *domain.LoanOverview) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "LOANS")
	if len(o.Loans) == 0 {
		fmt.Fprintln(buf, "  (none)")
	}
	for _, l := range o.Loans {
		fmt.Fprintf(buf, "  %-18s %-8s %-9s outstanding %16s  due %s\n",
			l.PersonName, l.Type, l.Status, FormatCurrency(l.OutstandingBalance), FormatDays(l.DaysUntilDue))
	}
	fmt.Fprintf(buf, "  Owed to you: %s  You owe: %s  Overdue: %d  Due within 30 days: %d\n",
		FormatCurrency(o.TotalLent), FormatCurrency(o.TotalBorrowed), len(o.Overdue), len(o.Upcoming))
}

func writeGoals(buf *bytes.Buffer, o *domain.GoalOverview) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "GOALS")
	if len(o.Goals) == 0 {
		fmt.Fprintln(buf, "  (none)")
	}
	for _, g := range o.Goals {
		fmt.Fprintf(buf, "  %-18s %-9s %16s of %16s  %7s  target %s",
			g.Name, g.Status, FormatCurrency(g.CurrentTotal), FormatCurrency(g.TargetAmount),
			FormatPercentage(g.ProgressPercentage), FormatDays(g.DaysUntilTarget))
		if g.MonthlyTarget != nil {
			fmt.Fprintf(buf, "  save %s/month", FormatCurrency(*g.MonthlyTarget))
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintf(buf, "  Active: %d  Completed: %d  Saved: %s of %s\n",
		o.ActiveCount, o.CompletedCount, FormatCurrency(o.TotalCurrentAmount), FormatCurrency(o.TotalTargetAmount))
}
