package calculation

import (
	"time"

	"github.com/pfet/finance-core/internal/domain"
	money "github.com/pfet/finance-core/pkg/decimal"
	"github.com/pfet/finance-core/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// PeriodStart returns the first calendar date of the budget period containing now.
// Unknown periods fall back to monthly.
func PeriodStart(period domain.BudgetPeriod, now time.Time) time.Time {
	switch period {
	case domain.PeriodWeekly:
		return dateutil.BeginningOfWeek(now)
	case domain.PeriodQuarterly:
		return dateutil.BeginningOfQuarter(now)
	case domain.PeriodYearly:
		return dateutil.BeginningOfYear(now)
	default:
		return dateutil.BeginningOfMonth(now)
	}
}

// ComputeBudgetSpend sums in-category expenses dated within the current period
// (period start through today) and derives the alert flags.
func ComputeBudgetSpend(budget domain.Budget, expenses []domain.Expense, now time.Time) domain.BudgetSpendResult {
	start := PeriodStart(budget.Period, now)
	end := dateutil.DateOf(now)

	spent := decimal.Zero
	for _, exp := range expenses {
		if exp.CategoryID != budget.CategoryID {
			continue
		}
		if !dateutil.WithinDates(exp.Date, start, end) {
			continue
		}
		spent = spent.Add(exp.Amount)
	}

	// The uncapped ratio drives the alerts; only the displayed value is capped.
	percentage := money.Percent(spent, budget.Amount)
	isOverBudget := spent.GreaterThan(budget.Amount)

	return domain.BudgetSpendResult{
		BudgetID:     budget.ID,
		CategoryID:   budget.CategoryID,
		CategoryName: budget.CategoryName,
		Period:       budget.Period,
		PeriodStart:  start,
		PeriodEnd:    end,
		Amount:       budget.Amount,
		Spent:        spent,
		Remaining:    money.NonNegative(budget.Amount.Sub(spent)),
		Percentage:   decimal.Min(percentage, hundred),
		IsOverBudget: isOverBudget,
		IsNearLimit:  percentage.GreaterThanOrEqual(budget.AlertThreshold) && !isOverBudget,
	}
}
