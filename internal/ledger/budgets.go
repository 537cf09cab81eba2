package ledger

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/pfet/finance-core/internal/calculation"
	"github.com/pfet/finance-core/internal/domain"
	"github.com/pfet/finance-core/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// BudgetUpdate lists the budget fields to change; nil fields are left as they are.
type BudgetUpdate struct {
	CategoryName   *string
	Amount         *decimal.Decimal
	Period         *domain.BudgetPeriod
	AlertThreshold *decimal.Decimal
	EndDate        *time.Time
	ClearEndDate   bool
}

// CreateBudget adds a budget for userID. A zero alert threshold takes the
// default of 80 and a missing start date is today. A user can only budget a
// category once.
func (b *Book) CreateBudget(userID uuid.UUID, budget domain.Budget) (domain.Budget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insertBudget(userID, budget)
}

func (b *Book) insertBudget(userID uuid.UUID, budget domain.Budget) (domain.Budget, error) {
	if err := requireUser(userID); err != nil {
		return domain.Budget{}, err
	}
	budget.UserID = userID
	budget.ID = orNewID(budget.ID)
	if budget.AlertThreshold.IsZero() {
		budget.AlertThreshold = domain.DefaultAlertThreshold
	}
	if budget.StartDate.IsZero() {
		budget.StartDate = dateutil.DateOf(b.clock())
	}
	if err := validateBudget(budget); err != nil {
		return domain.Budget{}, err
	}

	for _, existing := range b.budgets {
		if existing.ID == budget.ID {
			return domain.Budget{}, &domain.InvalidInputError{Field: "id", Message: "already in use"}
		}
		if existing.UserID == userID && existing.CategoryID == budget.CategoryID {
			return domain.Budget{}, domain.ErrDuplicateBudget
		}
	}

	b.budgets = append(b.budgets, budget)
	b.logger.Debugf("budget %s created for category %s", budget.ID, budget.CategoryID)
	return budget, nil
}

// UpdateBudget applies the non-nil fields of update to one of userID's budgets.
func (b *Book) UpdateBudget(userID, budgetID uuid.UUID, update BudgetUpdate) (domain.Budget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.budgetFor(userID, budgetID)
	if err != nil {
		return domain.Budget{}, err
	}

	budget := b.budgets[i]
	if update.CategoryName != nil {
		budget.CategoryName = *update.CategoryName
	}
	if update.Amount != nil {
		budget.Amount = *update.Amount
	}
	if update.Period != nil {
		budget.Period = *update.Period
	}
	if update.AlertThreshold != nil {
		budget.AlertThreshold = *update.AlertThreshold
	}
	if update.EndDate != nil {
		end := *update.EndDate
		budget.EndDate = &end
	}
	if update.ClearEndDate {
		budget.EndDate = nil
	}
	if err := validateBudget(budget); err != nil {
		return domain.Budget{}, err
	}

	b.budgets[i] = budget
	return budget, nil
}

// DeleteBudget removes a budget. Expenses in its category are kept.
func (b *Book) DeleteBudget(userID, budgetID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.budgetFor(userID, budgetID)
	if err != nil {
		return err
	}
	b.budgets = slices.Delete(b.budgets, i, i+1)
	return nil
}

// Budgets returns userID's budgets in creation order.
func (b *Book) Budgets(userID uuid.UUID) []domain.Budget {
	return b.Records(userID).Budgets
}

// AddExpense records an expense for userID. A missing date is today.
func (b *Book) AddExpense(userID uuid.UUID, exp domain.Expense) (domain.Expense, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insertExpense(userID, exp)
}

func (b *Book) insertExpense(userID uuid.UUID, exp domain.Expense) (domain.Expense, error) {
	if err := requireUser(userID); err != nil {
		return domain.Expense{}, err
	}
	exp.UserID = userID
	exp.ID = orNewID(exp.ID)
	if exp.Date.IsZero() {
		exp.Date = b.clock()
	}
	if err := requirePositive("amount", exp.Amount); err != nil {
		return domain.Expense{}, err
	}
	if exp.CategoryID == uuid.Nil {
		return domain.Expense{}, &domain.InvalidInputError{Field: "category_id", Message: "is required"}
	}
	for _, existing := range b.expenses {
		if existing.ID == exp.ID {
			return domain.Expense{}, &domain.InvalidInputError{Field: "id", Message: "already in use"}
		}
	}

	b.expenses = append(b.expenses, exp)
	return exp, nil
}

// RemoveExpense deletes one of userID's expenses.
func (b *Book) RemoveExpense(userID, expenseID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.expenses, func(e domain.Expense) bool {
		return e.ID == expenseID && e.UserID == userID
	})
	if i < 0 {
		return notFound("expense", expenseID)
	}
	b.expenses = slices.Delete(b.expenses, i, i+1)
	return nil
}

// BudgetSpend computes the current-period spend of one of userID's budgets.
func (b *Book) BudgetSpend(userID, budgetID uuid.UUID) (domain.BudgetSpendResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, err := b.budgetFor(userID, budgetID)
	if err != nil {
		return domain.BudgetSpendResult{}, err
	}
	budget := b.budgets[i]

	var expenses []domain.Expense
	for _, e := range b.expenses {
		if e.UserID == userID {
			expenses = append(expenses, e)
		}
	}
	return calculation.ComputeBudgetSpend(budget, expenses, b.clock()), nil
}

func (b *Book) budgetFor(userID, budgetID uuid.UUID) (int, error) {
	i := slices.IndexFunc(b.budgets, func(bg domain.Budget) bool {
		return bg.ID == budgetID && bg.UserID == userID
	})
	if i < 0 {
		return -1, notFound("budget", budgetID)
	}
	return i, nil
}

func validateBudget(budget domain.Budget) error {
	if budget.CategoryID == uuid.Nil {
		return &domain.InvalidInputError{Field: "category_id", Message: "is required"}
	}
	if err := requirePositive("amount", budget.Amount); err != nil {
		return err
	}
	if !budget.Period.Valid() {
		return &domain.InvalidInputError{Field: "period", Message: "must be weekly, monthly, quarterly or yearly"}
	}
	if err := requirePercent("alert_threshold", budget.AlertThreshold); err != nil {
		return err
	}
	if budget.EndDate != nil && budget.EndDate.Before(budget.StartDate) {
		return &domain.InvalidInputError{Field: "end_date", Message: "cannot be before start_date"}
	}
	return nil
}
