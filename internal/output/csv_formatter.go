package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes one row per line item: tax bands for a payslip, or one
// row per budget, loan and goal for a dashboard.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var rows [][]string
	if report.PAYE != nil {
		rows = payeRows(report)
	} else {
		rows = dashboardRows(report)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func payeRows(report *Report) [][]string {
	r := report.PAYE
	rows := [][]string{{"Item", "TaxableAmount", "RatePercent", "Amount"}}
	for _, b := range r.TaxByBand {
		rows = append(rows, []string{b.Band, b.TaxableAmount.StringFixed(2), b.Rate.String(), b.Tax.StringFixed(2)})
	}
	for _, item := range []struct {
		name  string
		value string
	}{
		{"GrossTax", r.GrossTax.StringFixed(2)},
		{"TaxRelief", r.TaxRelief.StringFixed(2)},
		{"PAYE", r.PAYE.StringFixed(2)},
		{"NHIF", r.NHIF.StringFixed(2)},
		{"NSSF", r.NSSF.StringFixed(2)},
		{"HousingLevy", r.HousingLevy.StringFixed(2)},
		{"TotalDeductions", r.TotalDeductions.StringFixed(2)},
		{"NetSalary", r.NetSalary.StringFixed(2)},
	} {
		rows = append(rows, []string{item.name, "", "", item.value})
	}
	return rows
}

func dashboardRows(report *Report) [][]string {
	rows := [][]string{{"Section", "ID", "Name", "Status", "Amount", "Current", "Outstanding", "Percentage", "Days", "Flag"}}
	if report.Budgets != nil {
		for _, b := range report.Budgets.Budgets {
			rows = append(rows, []string{
				"budget", b.BudgetID.String(), b.CategoryName, string(b.Period),
				b.Amount.StringFixed(2), b.Spent.StringFixed(2), b.Remaining.StringFixed(2),
				b.Percentage.StringFixed(2), "", strconv.FormatBool(b.IsOverBudget || b.IsNearLimit),
			})
		}
	}
	if report.Loans != nil {
		for _, l := range report.Loans.Loans {
			rows = append(rows, []string{
				"loan", l.LoanID.String(), l.PersonName, string(l.Status),
				l.PrincipalAmount.StringFixed(2), l.TotalPaid.StringFixed(2), l.OutstandingBalance.StringFixed(2),
				"", formatOptionalInt(l.DaysUntilDue), strconv.FormatBool(l.IsOverdue),
			})
		}
	}
	if report.Goals != nil {
		for _, g := range report.Goals.Goals {
			rows = append(rows, []string{
				"goal", g.GoalID.String(), g.Name, string(g.Status),
				g.TargetAmount.StringFixed(2), g.CurrentTotal.StringFixed(2), g.RemainingAmount.StringFixed(2),
				g.ProgressPercentage.StringFixed(2), formatOptionalInt(g.DaysUntilTarget), strconv.FormatBool(g.IsOverdue),
			})
		}
	}
	return rows
}
