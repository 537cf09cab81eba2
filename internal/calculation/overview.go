package calculation

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pfet/finance-core/internal/domain"
	"github.com/shopspring/decimal"
)

// upcomingWindowDays bounds the "due soon" lists of the loan and goal overviews.
const upcomingWindowDays = 30

// SummarizeBudgets computes the spend of every budget and collects the ones that
// are over or near their limit.
func SummarizeBudgets(budgets []domain.Budget, expenses []domain.Expense, now time.Time) domain.BudgetOverview {
	overview := domain.BudgetOverview{
		Budgets:       make([]domain.BudgetSpendResult, 0, len(budgets)),
		Alerts:        []domain.BudgetSpendResult{},
		TotalBudgeted: decimal.Zero,
		TotalSpent:    decimal.Zero,
	}

	for _, b := range budgets {
		res := ComputeBudgetSpend(b, expenses, now)
		overview.Budgets = append(overview.Budgets, res)
		if res.IsOverBudget || res.IsNearLimit {
			overview.Alerts = append(overview.Alerts, res)
		}
		if b.Period == domain.PeriodMonthly {
			overview.TotalBudgeted = overview.TotalBudgeted.Add(b.Amount)
		}
		overview.TotalSpent = overview.TotalSpent.Add(res.Spent)
	}

	return overview
}

// SummarizeLoans computes every loan's ledger and the outstanding totals per
// direction. Only active loans count towards totals, overdue and upcoming.
func SummarizeLoans(loans []domain.Loan, payments []domain.LoanPayment, now time.Time) domain.LoanOverview {
	byLoan := make(map[uuid.UUID][]domain.LoanPayment)
	for _, p := range payments {
		byLoan[p.LoanID] = append(byLoan[p.LoanID], p)
	}

	overview := domain.LoanOverview{
		Loans:         make([]domain.LoanLedgerResult, 0, len(loans)),
		TotalLent:     decimal.Zero,
		TotalBorrowed: decimal.Zero,
		Overdue:       []domain.LoanLedgerResult{},
		Upcoming:      []domain.LoanLedgerResult{},
	}

	for _, l := range loans {
		res := ComputeLoanLedger(l, byLoan[l.ID], now)
		overview.Loans = append(overview.Loans, res)
		if l.Status != domain.LoanActive {
			continue
		}

		switch l.Type {
		case domain.LoanLent:
			overview.TotalLent = overview.TotalLent.Add(res.OutstandingBalance)
		case domain.LoanBorrowed:
			overview.TotalBorrowed = overview.TotalBorrowed.Add(res.OutstandingBalance)
		}

		if res.IsOverdue {
			overview.Overdue = append(overview.Overdue, res)
		}
		if dueWithin(res.DaysUntilDue) {
			overview.Upcoming = append(overview.Upcoming, res)
		}
	}

	sort.SliceStable(overview.Upcoming, func(i, j int) bool {
		return *overview.Upcoming[i].DaysUntilDue < *overview.Upcoming[j].DaysUntilDue
	})

	return overview
}

// SummarizeGoals computes every goal's progress. Totals, overdue and upcoming
// consider active goals only.
func SummarizeGoals(goals []domain.Goal, contributions []domain.GoalContribution, now time.Time) domain.GoalOverview {
	byGoal := make(map[uuid.UUID][]domain.GoalContribution)
	for _, c := range contributions {
		byGoal[c.GoalID] = append(byGoal[c.GoalID], c)
	}

	overview := domain.GoalOverview{
		Goals:              make([]domain.GoalProgressResult, 0, len(goals)),
		TotalTargetAmount:  decimal.Zero,
		TotalCurrentAmount: decimal.Zero,
		Overdue:            []domain.GoalProgressResult{},
		Upcoming:           []domain.GoalProgressResult{},
	}

	for _, g := range goals {
		res := ComputeGoalProgress(g, byGoal[g.ID], now)
		overview.Goals = append(overview.Goals, res)

		switch g.Status {
		case domain.GoalCompleted:
			overview.CompletedCount++
			continue
		case domain.GoalActive:
			overview.ActiveCount++
		default:
			continue
		}

		overview.TotalTargetAmount = overview.TotalTargetAmount.Add(res.TargetAmount)
		overview.TotalCurrentAmount = overview.TotalCurrentAmount.Add(res.CurrentTotal)
		if res.IsOverdue {
			overview.Overdue = append(overview.Overdue, res)
		}
		if dueWithin(res.DaysUntilTarget) {
			overview.Upcoming = append(overview.Upcoming, res)
		}
	}

	sort.SliceStable(overview.Upcoming, func(i, j int) bool {
		return *overview.Upcoming[i].DaysUntilTarget < *overview.Upcoming[j].DaysUntilTarget
	})

	return overview
}

func dueWithin(days *int) bool {
	return days != nil && *days >= 0 && *days <= upcomingWindowDays
}
