package calculation

import (
	"time"

	"github.com/pfet/finance-core/internal/domain"
	money "github.com/pfet/finance-core/pkg/decimal"
	"github.com/pfet/finance-core/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var daysPerMonth = decimal.NewFromInt(30)

// ComputeGoalProgress derives a goal's progress and required pace as of now.
func ComputeGoalProgress(goal domain.Goal, contributions []domain.GoalContribution, now time.Time) domain.GoalProgressResult {
	totalContributed := decimal.Zero
	for _, c := range contributions {
		totalContributed = totalContributed.Add(c.Amount)
	}
	currentTotal := goal.CurrentAmount.Add(totalContributed)

	progress := decimal.Zero
	if goal.TargetAmount.IsPositive() {
		progress = decimal.Min(money.Percent(currentTotal, goal.TargetAmount), hundred)
	}
	remaining := money.NonNegative(goal.TargetAmount.Sub(currentTotal))

	result := domain.GoalProgressResult{
		GoalID:             goal.ID,
		Name:               goal.Name,
		Status:             goal.Status,
		Priority:           goal.Priority,
		TargetAmount:       goal.TargetAmount,
		TotalContributed:   totalContributed,
		CurrentTotal:       currentTotal,
		ProgressPercentage: progress,
		RemainingAmount:    remaining,
	}

	if goal.TargetDate == nil || goal.Status != domain.GoalActive {
		return result
	}

	days := dateutil.CeilDays(now, *goal.TargetDate)
	result.DaysUntilTarget = &days
	result.IsOverdue = days < 0 && remaining.IsPositive()

	if days > 0 && remaining.IsPositive() {
		months := decimal.NewFromInt(int64(days)).Div(daysPerMonth)
		monthly := remaining
		if months.IsPositive() {
			monthly = remaining.Div(months)
		}
		result.MonthlyTarget = &monthly
	}

	return result
}
