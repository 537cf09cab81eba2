package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus is the lifecycle state of a savings goal
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalCancelled GoalStatus = "cancelled"
)

// Valid reports whether s is a known goal status
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalCancelled:
		return true
	}
	return false
}

type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

// Valid reports whether p is a known priority
func (p GoalPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type GoalCategory string

const (
	GoalSavings       GoalCategory = "savings"
	GoalInvestment    GoalCategory = "investment"
	GoalDebtPayoff    GoalCategory = "debt_payoff"
	GoalPurchase      GoalCategory = "purchase"
	GoalEmergencyFund GoalCategory = "emergency_fund"
	GoalOther         GoalCategory = "other"
)

// Goal is a savings target. CurrentAmount is the baseline saved before any
// contributions were recorded.
type Goal struct {
	ID            uuid.UUID       `yaml:"id" json:"id"`
	UserID        uuid.UUID       `yaml:"user_id" json:"user_id"`
	Name          string          `yaml:"name" json:"name"`
	Description   string          `yaml:"description,omitempty" json:"description,omitempty"`
	TargetAmount  decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	CurrentAmount decimal.Decimal `yaml:"current_amount" json:"current_amount"`
	TargetDate    *time.Time      `yaml:"target_date,omitempty" json:"target_date,omitempty"`
	Category      GoalCategory    `yaml:"category,omitempty" json:"category,omitempty"`
	Priority      GoalPriority    `yaml:"priority" json:"priority"`
	Status        GoalStatus      `yaml:"status" json:"status"`
}

// GoalContribution is money put towards a goal
type GoalContribution struct {
	ID               uuid.UUID       `yaml:"id" json:"id"`
	GoalID           uuid.UUID       `yaml:"goal_id" json:"goal_id"`
	Amount           decimal.Decimal `yaml:"amount" json:"amount"`
	ContributionDate time.Time       `yaml:"contribution_date" json:"contribution_date"`
	Notes            string          `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// GoalProgressResult is the derived progress of a goal as of "now"
type GoalProgressResult struct {
	GoalID             uuid.UUID        `json:"goal_id"`
	Name               string           `json:"name"`
	Status             GoalStatus       `json:"status"`
	Priority           GoalPriority     `json:"priority"`
	TargetAmount       decimal.Decimal  `json:"target_amount"`
	TotalContributed   decimal.Decimal  `json:"total_contributed"`
	CurrentTotal       decimal.Decimal  `json:"current_total"`
	ProgressPercentage decimal.Decimal  `json:"progress_percentage"`
	RemainingAmount    decimal.Decimal  `json:"remaining_amount"`
	DaysUntilTarget    *int             `json:"days_until_target"`
	IsOverdue          bool             `json:"is_overdue"`
	MonthlyTarget      *decimal.Decimal `json:"monthly_target"`
}

// Reached reports whether the goal's target has been met
func (r GoalProgressResult) Reached() bool {
	return r.CurrentTotal.GreaterThanOrEqual(r.TargetAmount)
}

// GoalOverview summarises every goal of a user
type GoalOverview struct {
	Goals              []GoalProgressResult `json:"goals"`
	ActiveCount        int                  `json:"active_count"`
	CompletedCount     int                  `json:"completed_count"`
	TotalTargetAmount  decimal.Decimal      `json:"total_target_amount"`  // active goals
	TotalCurrentAmount decimal.Decimal      `json:"total_current_amount"` // active goals
	Overdue            []GoalProgressResult `json:"overdue"`
	Upcoming           []GoalProgressResult `json:"upcoming"` // target within 30 days, soonest first
}

// Dashboard combines the overviews of one user at one instant
type Dashboard struct {
	UserID      uuid.UUID      `json:"user_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Budgets     BudgetOverview `json:"budgets"`
	Loans       LoanOverview   `json:"loans"`
	Goals       GoalOverview   `json:"goals"`
}
