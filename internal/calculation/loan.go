package calculation

import (
	"time"

	"github.com/pfet/finance-core/internal/domain"
	money "github.com/pfet/finance-core/pkg/decimal"
	"github.com/pfet/finance-core/pkg/dateutil"
	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// AccruedInterest returns simple (non-compounding) interest on a loan from its
// issue date up to now. It keeps growing until the loan is settled.
func AccruedInterest(loan domain.Loan, now time.Time) decimal.Decimal {
	years := money.NonNegative(dateutil.DaysBetween(loan.DateIssued, now)).Div(daysPerYear)
	return loan.PrincipalAmount.Mul(loan.InterestRate.Div(hundred)).Mul(years)
}

// ComputeLoanLedger derives a loan's balance and due-date state as of now.
func ComputeLoanLedger(loan domain.Loan, payments []domain.LoanPayment, now time.Time) domain.LoanLedgerResult {
	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}

	interest := AccruedInterest(loan, now)
	totalWithInterest := loan.PrincipalAmount.Add(interest)

	result := domain.LoanLedgerResult{
		LoanID:             loan.ID,
		Type:               loan.Type,
		PersonName:         loan.PersonName,
		Status:             loan.Status,
		PrincipalAmount:    loan.PrincipalAmount,
		TotalPaid:          totalPaid,
		AccruedInterest:    interest,
		TotalWithInterest:  totalWithInterest,
		OutstandingBalance: money.NonNegative(totalWithInterest.Sub(totalPaid)),
	}

	if loan.DueDate != nil && loan.Status == domain.LoanActive {
		days := dateutil.CeilDays(now, *loan.DueDate)
		result.DaysUntilDue = &days
		result.IsOverdue = days < 0
	}

	return result
}
