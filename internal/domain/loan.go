package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanType distinguishes money lent out from money borrowed
type LoanType string

const (
	LoanLent     LoanType = "lent"
	LoanBorrowed LoanType = "borrowed"
)

// Valid reports whether t is a known loan type
func (t LoanType) Valid() bool { return t == LoanLent || t == LoanBorrowed }

// LoanStatus is the lifecycle state of an informal loan
type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanPaid      LoanStatus = "paid"
	LoanDefaulted LoanStatus = "defaulted"
	LoanForgiven  LoanStatus = "forgiven"
)

// Valid reports whether s is a known loan status
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanActive, LoanPaid, LoanDefaulted, LoanForgiven:
		return true
	}
	return false
}

// Loan is an informal loan to or from another person. Interest is simple and
// accrues continuously from DateIssued.
type Loan struct {
	ID              uuid.UUID       `yaml:"id" json:"id"`
	UserID          uuid.UUID       `yaml:"user_id" json:"user_id"`
	Type            LoanType        `yaml:"type" json:"type"`
	PersonName      string          `yaml:"person_name" json:"person_name"`
	PersonContact   string          `yaml:"person_contact,omitempty" json:"person_contact,omitempty"`
	PrincipalAmount decimal.Decimal `yaml:"principal_amount" json:"principal_amount"`
	InterestRate    decimal.Decimal `yaml:"interest_rate" json:"interest_rate"` // annual percent, 0-100
	DateIssued      time.Time       `yaml:"date_issued" json:"date_issued"`
	DueDate         *time.Time      `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	Status          LoanStatus      `yaml:"status" json:"status"`
	Notes           string          `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// LoanPayment is a repayment recorded against a loan
type LoanPayment struct {
	ID          uuid.UUID       `yaml:"id" json:"id"`
	LoanID      uuid.UUID       `yaml:"loan_id" json:"loan_id"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	PaymentDate time.Time       `yaml:"payment_date" json:"payment_date"`
	Notes       string          `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// LoanLedgerResult is the derived balance of a loan as of "now"
type LoanLedgerResult struct {
	LoanID             uuid.UUID       `json:"loan_id"`
	Type               LoanType        `json:"type"`
	PersonName         string          `json:"person_name"`
	Status             LoanStatus      `json:"status"`
	PrincipalAmount    decimal.Decimal `json:"principal_amount"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	AccruedInterest    decimal.Decimal `json:"accrued_interest"`
	TotalWithInterest  decimal.Decimal `json:"total_with_interest"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	IsOverdue          bool            `json:"is_overdue"`
	DaysUntilDue       *int            `json:"days_until_due"`
}

// Settled reports whether payments cover principal plus accrued interest
func (r LoanLedgerResult) Settled() bool {
	return r.TotalPaid.GreaterThanOrEqual(r.TotalWithInterest)
}

// LoanOverview summarises every loan of a user
type LoanOverview struct {
	Loans         []LoanLedgerResult `json:"loans"`
	TotalLent     decimal.Decimal    `json:"total_lent"`     // outstanding on active lent loans
	TotalBorrowed decimal.Decimal    `json:"total_borrowed"` // outstanding on active borrowed loans
	Overdue       []LoanLedgerResult `json:"overdue"`
	Upcoming      []LoanLedgerResult `json:"upcoming"` // due within 30 days, soonest first
}
