package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod is the rolling window a budget is measured over
type BudgetPeriod string

const (
	PeriodWeekly    BudgetPeriod = "weekly"
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

// Valid reports whether p is one of the supported periods
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// DefaultAlertThreshold is the spend percentage that triggers a near-limit alert.
var DefaultAlertThreshold = decimal.NewFromInt(80)

// Budget caps spending in one expense category. A user has at most one budget per category.
type Budget struct {
	ID             uuid.UUID       `yaml:"id" json:"id"`
	UserID         uuid.UUID       `yaml:"user_id" json:"user_id"`
	CategoryID     uuid.UUID       `yaml:"category_id" json:"category_id"`
	CategoryName   string          `yaml:"category_name,omitempty" json:"category_name,omitempty"`
	Amount         decimal.Decimal `yaml:"amount" json:"amount"`
	Period         BudgetPeriod    `yaml:"period" json:"period"`
	StartDate      time.Time       `yaml:"start_date" json:"start_date"`
	EndDate        *time.Time      `yaml:"end_date,omitempty" json:"end_date,omitempty"`
	AlertThreshold decimal.Decimal `yaml:"alert_threshold" json:"alert_threshold"` // percent, 0-100
}

// Expense is a single spend record consumed by budget aggregation
type Expense struct {
	ID          uuid.UUID       `yaml:"id" json:"id"`
	UserID      uuid.UUID       `yaml:"user_id" json:"user_id"`
	AccountID   *uuid.UUID      `yaml:"account_id,omitempty" json:"account_id,omitempty"`
	CategoryID  uuid.UUID       `yaml:"category_id" json:"category_id"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Date        time.Time       `yaml:"date" json:"date"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// BudgetSpendResult is the derived spend state of a budget for the current period
type BudgetSpendResult struct {
	BudgetID     uuid.UUID       `json:"budget_id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Period       BudgetPeriod    `json:"period"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	Amount       decimal.Decimal `json:"amount"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   decimal.Decimal `json:"percentage"` // capped at 100 for display
	IsOverBudget bool            `json:"is_over_budget"`
	IsNearLimit  bool            `json:"is_near_limit"`
}

// BudgetOverview summarises every budget of a user
type BudgetOverview struct {
	Budgets       []BudgetSpendResult `json:"budgets"`
	Alerts        []BudgetSpendResult `json:"alerts"`
	TotalBudgeted decimal.Decimal     `json:"total_budgeted"` // monthly budgets only
	TotalSpent    decimal.Decimal     `json:"total_spent"`
}
