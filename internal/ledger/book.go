// Package ledger holds users' budgets, loans and goals in memory and keeps
// derived state (loan and goal status) consistent with their child records.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pfet/finance-core/internal/calculation"
	"github.com/pfet/finance-core/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Book is an in-memory ledger. Every record belongs to one user and is only
// visible to that user; a record owned by someone else is reported as not found.
//
// All mutations hold the write lock, so "insert child, recompute, update
// parent status" runs as one step per parent.
type Book struct {
	mu sync.RWMutex

	budgets       []domain.Budget
	expenses      []domain.Expense
	loans         []domain.Loan
	payments      []domain.LoanPayment
	goals         []domain.Goal
	contributions []domain.GoalContribution

	clock  func() time.Time
	logger calculation.Logger
}

// NewBook creates an empty ledger. A nil logger is replaced by a no-op logger.
func NewBook(logger calculation.Logger) *Book {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Book{clock: time.Now, logger: logger}
}

// SetClock replaces the time source used for default dates and for derived
// state computed on writes.
func (b *Book) SetClock(clock func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if clock == nil {
		clock = time.Now
	}
	b.clock = clock
}

// Import loads a snapshot into the book. The snapshot is validated as a whole
// and nothing is added if any record is rejected. Records without an ID get one.
// Active loans and goals that the imported records settle or reach become paid
// or completed; every other status is taken as recorded.
func (b *Book) Import(snap domain.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	staged := &Book{
		budgets:       append([]domain.Budget(nil), b.budgets...),
		expenses:      append([]domain.Expense(nil), b.expenses...),
		loans:         append([]domain.Loan(nil), b.loans...),
		payments:      append([]domain.LoanPayment(nil), b.payments...),
		goals:         append([]domain.Goal(nil), b.goals...),
		contributions: append([]domain.GoalContribution(nil), b.contributions...),
		clock:         b.clock,
		logger:        b.logger,
	}

	for i, budget := range snap.Budgets {
		if _, err := staged.insertBudget(budget.UserID, budget); err != nil {
			return fmt.Errorf("budget %d: %w", i, err)
		}
	}
	for i, exp := range snap.Expenses {
		if _, err := staged.insertExpense(exp.UserID, exp); err != nil {
			return fmt.Errorf("expense %d: %w", i, err)
		}
	}
	for i, loan := range snap.Loans {
		if _, err := staged.insertLoan(loan.UserID, loan); err != nil {
			return fmt.Errorf("loan %d: %w", i, err)
		}
	}
	for i, p := range snap.LoanPayments {
		if staged.loanIndex(p.LoanID) < 0 {
			return fmt.Errorf("loan payment %d: %w", i, notFound("loan", p.LoanID))
		}
		if _, err := staged.insertPayment(p); err != nil {
			return fmt.Errorf("loan payment %d: %w", i, err)
		}
	}
	for i, goal := range snap.Goals {
		if _, err := staged.insertGoal(goal.UserID, goal); err != nil {
			return fmt.Errorf("goal %d: %w", i, err)
		}
	}
	for i, c := range snap.GoalContributions {
		if staged.goalIndex(c.GoalID) < 0 {
			return fmt.Errorf("goal contribution %d: %w", i, notFound("goal", c.GoalID))
		}
		if _, err := staged.insertContribution(c); err != nil {
			return fmt.Errorf("goal contribution %d: %w", i, err)
		}
	}

	for i := range staged.loans {
		staged.reconcileLoan(i, importedLoanStatus)
	}
	for i := range staged.goals {
		staged.reconcileGoal(i, importedGoalStatus)
	}

	b.budgets = staged.budgets
	b.expenses = staged.expenses
	b.loans = staged.loans
	b.payments = staged.payments
	b.goals = staged.goals
	b.contributions = staged.contributions

	b.logger.Infof("imported %d budgets, %d expenses, %d loans, %d payments, %d goals, %d contributions",
		len(snap.Budgets), len(snap.Expenses), len(snap.Loans), len(snap.LoanPayments),
		len(snap.Goals), len(snap.GoalContributions))
	return nil
}

// Records copies out every record owned by userID.
func (b *Book) Records(userID uuid.UUID) domain.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.recordsLocked(userID)
}

func (b *Book) recordsLocked(userID uuid.UUID) domain.Snapshot {
	var snap domain.Snapshot
	loanIDs := make(map[uuid.UUID]bool)
	goalIDs := make(map[uuid.UUID]bool)

	for _, budget := range b.budgets {
		if budget.UserID == userID {
			snap.Budgets = append(snap.Budgets, budget)
		}
	}
	for _, exp := range b.expenses {
		if exp.UserID == userID {
			snap.Expenses = append(snap.Expenses, exp)
		}
	}
	for _, loan := range b.loans {
		if loan.UserID == userID {
			snap.Loans = append(snap.Loans, loan)
			loanIDs[loan.ID] = true
		}
	}
	for _, p := range b.payments {
		if loanIDs[p.LoanID] {
			snap.LoanPayments = append(snap.LoanPayments, p)
		}
	}
	for _, goal := range b.goals {
		if goal.UserID == userID {
			snap.Goals = append(snap.Goals, goal)
			goalIDs[goal.ID] = true
		}
	}
	for _, c := range b.contributions {
		if goalIDs[c.GoalID] {
			snap.GoalContributions = append(snap.GoalContributions, c)
		}
	}
	return snap
}

// Dashboard computes the budget, loan and goal overviews of a user as of now.
// The user's records are copied under the read lock and the three overviews are
// computed concurrently outside it.
func (b *Book) Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := b.Records(userID)
	dash := &domain.Dashboard{UserID: userID, GeneratedAt: now}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		dash.Budgets = calculation.SummarizeBudgets(records.Budgets, records.Expenses, now)
		return nil
	})

	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		dash.Loans = calculation.SummarizeLoans(records.Loans, records.LoanPayments, now)
		return nil
	})

	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		dash.Goals = calculation.SummarizeGoals(records.Goals, records.GoalContributions, now)
		return nil
	})

	if err := g.Wait(); err != nil {
		b.logger.Errorf("dashboard for user %s: %v", userID, err)
		return nil, fmt.Errorf("dashboard for user %s: %w", userID, err)
	}

	b.logger.Debugf("dashboard for user %s: %d budgets (%d alerts), %d loans, %d goals",
		userID, len(dash.Budgets.Budgets), len(dash.Budgets.Alerts), len(dash.Loans.Loans), len(dash.Goals.Goals))
	return dash, nil
}

// importedLoanStatus only settles active loans. A paid loan is not reopened
// because interest has kept accruing since it was recorded.
func importedLoanStatus(current domain.LoanStatus, ledger domain.LoanLedgerResult) domain.LoanStatus {
	if current != domain.LoanActive {
		return current
	}
	return calculation.ReconcileLoanStatus(current, ledger)
}

func importedGoalStatus(current domain.GoalStatus, progress domain.GoalProgressResult) domain.GoalStatus {
	if current != domain.GoalActive {
		return current
	}
	return calculation.ReconcileGoalStatus(current, progress)
}

func notFound(resource string, id uuid.UUID) error {
	return &domain.NotFoundError{Resource: resource, ID: id.String()}
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return &domain.InvalidInputError{Field: field, Message: "must be greater than zero"}
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &domain.InvalidInputError{Field: field, Message: "cannot be negative"}
	}
	return nil
}

func requirePercent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100)) {
		return &domain.InvalidInputError{Field: field, Message: "must be between 0 and 100"}
	}
	return nil
}

func requireUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return &domain.InvalidInputError{Field: "user_id", Message: "is required"}
	}
	return nil
}

func orNewID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
