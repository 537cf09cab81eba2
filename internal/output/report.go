package output

import (
	"time"

	"github.com/google/uuid"
	"github.com/pfet/finance-core/internal/domain"
)

// Report is what a formatter renders: a payslip breakdown, or any subset of a
// user's dashboard sections. Nil sections are skipped.
type Report struct {
	PAYE *domain.PAYEResult `json:"paye,omitempty" yaml:"paye,omitempty"`

	UserID      uuid.UUID              `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	GeneratedAt time.Time              `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	Budgets     *domain.BudgetOverview `json:"budgets,omitempty" yaml:"budgets,omitempty"`
	Loans       *domain.LoanOverview   `json:"loans,omitempty" yaml:"loans,omitempty"`
	Goals       *domain.GoalOverview   `json:"goals,omitempty" yaml:"goals,omitempty"`
}

// PAYEReport wraps a payslip breakdown.
func PAYEReport(r *domain.PAYEResult) *Report {
	return &Report{PAYE: r}
}

// DashboardReport wraps every section of a dashboard.
func DashboardReport(d *domain.Dashboard) *Report {
	return &Report{
		UserID:      d.UserID,
		GeneratedAt: d.GeneratedAt,
		Budgets:     &d.Budgets,
		Loans:       &d.Loans,
		Goals:       &d.Goals,
	}
}

// Only keeps the named dashboard section ("budgets", "loans" or "goals").
// Any other name leaves the report unchanged.
func (r *Report) Only(section string) *Report {
	out := &Report{UserID: r.UserID, GeneratedAt: r.GeneratedAt}
	switch section {
	case "budgets":
		out.Budgets = r.Budgets
	case "loans":
		out.Loans = r.Loans
	case "goals":
		out.Goals = r.Goals
	default:
		return r
	}
	return out
}

// Kind names the report for saved file names.
func (r *Report) Kind() string {
	if r.PAYE != nil {
		return "paye"
	}
	return "dashboard"
}
