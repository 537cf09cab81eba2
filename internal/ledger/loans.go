package ledger

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pfet/finance-core/internal/calculation"
	"github.com/pfet/finance-core/internal/domain"
	"github.com/pfet/finance-core/pkg/dateutil"
)

// CreateLoan records a loan for userID. Status defaults to active and a missing
// issue date is today.
func (b *Book) CreateLoan(userID uuid.UUID, loan domain.Loan) (domain.Loan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insertLoan(userID, loan)
}

func (b *Book) insertLoan(userID uuid.UUID, loan domain.Loan) (domain.Loan, error) {
	if err := requireUser(userID); err != nil {
		return domain.Loan{}, err
	}
	loan.UserID = userID
	loan.ID = orNewID(loan.ID)
	if loan.Status == "" {
		loan.Status = domain.LoanActive
	}
	if loan.DateIssued.IsZero() {
		loan.DateIssued = dateutil.DateOf(b.clock())
	}
	if err := validateLoan(loan); err != nil {
		return domain.Loan{}, err
	}
	if b.loanIndex(loan.ID) >= 0 {
		return domain.Loan{}, &domain.InvalidInputError{Field: "id", Message: "already in use"}
	}

	b.loans = append(b.loans, loan)
	b.logger.Debugf("loan %s (%s) created with %s", loan.ID, loan.Type, loan.PersonName)
	return loan, nil
}

// UpdateLoanStatus sets a loan's status by hand, e.g. to defaulted or forgiven.
func (b *Book) UpdateLoanStatus(userID, loanID uuid.UUID, status domain.LoanStatus) (domain.Loan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !status.Valid() {
		return domain.Loan{}, &domain.InvalidInputError{Field: "status", Message: "must be active, paid, defaulted or forgiven"}
	}
	i, err := b.loanFor(userID, loanID)
	if err != nil {
		return domain.Loan{}, err
	}
	b.loans[i].Status = status
	return b.loans[i], nil
}

// DeleteLoan removes a loan together with its payments.
func (b *Book) DeleteLoan(userID, loanID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.loanFor(userID, loanID)
	if err != nil {
		return err
	}
	b.loans = slices.Delete(b.loans, i, i+1)
	b.payments = slices.DeleteFunc(b.payments, func(p domain.LoanPayment) bool {
		return p.LoanID == loanID
	})
	return nil
}

// Loan returns one of userID's loans.
func (b *Book) Loan(userID, loanID uuid.UUID) (domain.Loan, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, err := b.loanFor(userID, loanID)
	if err != nil {
		return domain.Loan{}, err
	}
	return b.loans[i], nil
}

// Loans returns userID's loans in creation order.
func (b *Book) Loans(userID uuid.UUID) []domain.Loan {
	return b.Records(userID).Loans
}

// AddLoanPayment records a repayment and reconciles the loan's status.
func (b *Book) AddLoanPayment(userID uuid.UUID, p domain.LoanPayment) (domain.LoanPayment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.loanFor(userID, p.LoanID)
	if err != nil {
		return domain.LoanPayment{}, err
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = dateutil.DateOf(b.clock())
	}
	p, err = b.insertPayment(p)
	if err != nil {
		return domain.LoanPayment{}, err
	}
	b.reconcileLoan(i, calculation.ReconcileLoanStatus)
	return p, nil
}

// RemoveLoanPayment deletes a repayment. A paid loan that is no longer settled
// goes back to active; no other status changes.
func (b *Book) RemoveLoanPayment(userID, paymentID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	pi := slices.IndexFunc(b.payments, func(p domain.LoanPayment) bool { return p.ID == paymentID })
	if pi < 0 {
		return notFound("loan payment", paymentID)
	}
	li, err := b.loanFor(userID, b.payments[pi].LoanID)
	if err != nil {
		// another user's loan: hide the payment as well
		return notFound("loan payment", paymentID)
	}

	b.payments = slices.Delete(b.payments, pi, pi+1)
	b.reconcileLoan(li, calculation.ReopenLoanStatus)
	return nil
}

// LoanLedger computes the balance of one of userID's loans as of now.
func (b *Book) LoanLedger(userID, loanID uuid.UUID) (domain.LoanLedgerResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, err := b.loanFor(userID, loanID)
	if err != nil {
		return domain.LoanLedgerResult{}, err
	}
	return calculation.ComputeLoanLedger(b.loans[i], b.paymentsOf(loanID), b.clock()), nil
}

// reconcileLoan recomputes loan i and applies rule to its status.
// Callers hold the write lock.
func (b *Book) reconcileLoan(i int, rule func(domain.LoanStatus, domain.LoanLedgerResult) domain.LoanStatus) {
	loan := b.loans[i]
	result := calculation.ComputeLoanLedger(loan, b.paymentsOf(loan.ID), b.clock())
	status := rule(loan.Status, result)
	if status != loan.Status {
		b.logger.Infof("loan %s: status %s -> %s (paid %s of %s)", loan.ID, loan.Status, status,
			result.TotalPaid.StringFixed(2), result.TotalWithInterest.StringFixed(2))
		b.loans[i].Status = status
	}
}

func (b *Book) paymentsOf(loanID uuid.UUID) []domain.LoanPayment {
	var out []domain.LoanPayment
	for _, p := range b.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out
}

func (b *Book) loanIndex(loanID uuid.UUID) int {
	return slices.IndexFunc(b.loans, func(l domain.Loan) bool { return l.ID == loanID })
}

func (b *Book) loanFor(userID, loanID uuid.UUID) (int, error) {
	i := b.loanIndex(loanID)
	if i < 0 || b.loans[i].UserID != userID {
		return -1, notFound("loan", loanID)
	}
	return i, nil
}

func validateLoan(loan domain.Loan) error {
	if !loan.Type.Valid() {
		return &domain.InvalidInputError{Field: "type", Message: "must be lent or borrowed"}
	}
	if strings.TrimSpace(loan.PersonName) == "" {
		return &domain.InvalidInputError{Field: "person_name", Message: "is required"}
	}
	if err := requirePositive("principal_amount", loan.PrincipalAmount); err != nil {
		return err
	}
	if err := requirePercent("interest_rate", loan.InterestRate); err != nil {
		return err
	}
	if !loan.Status.Valid() {
		return &domain.InvalidInputError{Field: "status", Message: "must be active, paid, defaulted or forgiven"}
	}
	if loan.DueDate != nil && loan.DueDate.Before(loan.DateIssued) {
		return &domain.InvalidInputError{Field: "due_date", Message: "cannot be before date_issued"}
	}
	return nil
}

// insertPayment validates p, gives it an ID if it has none and appends it.
// The loan is not reconciled. Callers hold the write lock.
func (b *Book) insertPayment(p domain.LoanPayment) (domain.LoanPayment, error) {
	if err := requirePositive("amount", p.Amount); err != nil {
		return domain.LoanPayment{}, err
	}
	p.ID = orNewID(p.ID)
	if slices.ContainsFunc(b.payments, func(existing domain.LoanPayment) bool { return existing.ID == p.ID }) {
		return domain.LoanPayment{}, &domain.InvalidInputError{Field: "id", Message: "already in use"}
	}

	b.payments = append(b.payments, p)
	return p, nil
}
