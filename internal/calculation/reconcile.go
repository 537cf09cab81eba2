package calculation

import "github.com/pfet/finance-core/internal/domain"

// ReconcileLoanStatus returns the status a loan should carry after a payment was
// added. Settled loans become paid; a paid loan that is no longer settled goes
// back to active. Other statuses are left alone.
func ReconcileLoanStatus(current domain.LoanStatus, ledger domain.LoanLedgerResult) domain.LoanStatus {
	if ledger.Settled() {
		return domain.LoanPaid
	}
	return ReopenLoanStatus(current, ledger)
}

// ReopenLoanStatus returns the status a loan should carry after a payment was
// removed. It only demotes paid to active and never promotes.
func ReopenLoanStatus(current domain.LoanStatus, ledger domain.LoanLedgerResult) domain.LoanStatus {
	if current == domain.LoanPaid && !ledger.Settled() {
		return domain.LoanActive
	}
	return current
}

// ReconcileGoalStatus returns the status a goal should carry after a contribution
// was added.
func ReconcileGoalStatus(current domain.GoalStatus, progress domain.GoalProgressResult) domain.GoalStatus {
	if progress.Reached() {
		return domain.GoalCompleted
	}
	return ReopenGoalStatus(current, progress)
}

// ReopenGoalStatus returns the status a goal should carry after a contribution
// was removed. Only completed goals that fell short go back to active.
func ReopenGoalStatus(current domain.GoalStatus, progress domain.GoalProgressResult) domain.GoalStatus {
	if current == domain.GoalCompleted && !progress.Reached() {
		return domain.GoalActive
	}
	return current
}
