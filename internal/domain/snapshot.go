package domain

// Snapshot is a full set of ledger records, as stored in a ledger YAML file or
// copied out of the ledger for one user.
type Snapshot struct {
	Budgets           []Budget           `yaml:"budgets" json:"budgets"`
	Expenses          []Expense          `yaml:"expenses" json:"expenses"`
	Loans             []Loan             `yaml:"loans" json:"loans"`
	LoanPayments      []LoanPayment      `yaml:"loan_payments" json:"loan_payments"`
	Goals             []Goal             `yaml:"goals" json:"goals"`
	GoalContributions []GoalContribution `yaml:"goal_contributions" json:"goal_contributions"`
}
