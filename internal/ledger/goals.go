package ledger

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pfet/finance-core/internal/calculation"
	"github.com/pfet/finance-core/internal/domain"
	"github.com/pfet/finance-core/pkg/dateutil"
)

// CreateGoal adds a savings goal for userID. Status defaults to active,
// priority to medium and category to other.
func (b *Book) CreateGoal(userID uuid.UUID, goal domain.Goal) (domain.Goal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insertGoal(userID, goal)
}

func (b *Book) insertGoal(userID uuid.UUID, goal domain.Goal) (domain.Goal, error) {
	if err := requireUser(userID); err != nil {
		return domain.Goal{}, err
	}
	goal.UserID = userID
	goal.ID = orNewID(goal.ID)
	if goal.Status == "" {
		goal.Status = domain.GoalActive
	}
	if goal.Priority == "" {
		goal.Priority = domain.PriorityMedium
	}
	if goal.Category == "" {
		goal.Category = domain.GoalOther
	}
	if err := validateGoal(goal); err != nil {
		return domain.Goal{}, err
	}
	if b.goalIndex(goal.ID) >= 0 {
		return domain.Goal{}, &domain.InvalidInputError{Field: "id", Message: "already in use"}
	}

	b.goals = append(b.goals, goal)
	b.logger.Debugf("goal %s created: %q target %s", goal.ID, goal.Name, goal.TargetAmount.StringFixed(2))
	return goal, nil
}

// DeleteGoal removes a goal together with its contributions.
func (b *Book) DeleteGoal(userID, goalID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.goalFor(userID, goalID)
	if err != nil {
		return err
	}
	b.goals = slices.Delete(b.goals, i, i+1)
	b.contributions = slices.DeleteFunc(b.contributions, func(c domain.GoalContribution) bool {
		return c.GoalID == goalID
	})
	return nil
}

// Goal returns one of userID's goals.
func (b *Book) Goal(userID, goalID uuid.UUID) (domain.Goal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, err := b.goalFor(userID, goalID)
	if err != nil {
		return domain.Goal{}, err
	}
	return b.goals[i], nil
}

// Goals returns userID's goals in creation order.
func (b *Book) Goals(userID uuid.UUID) []domain.Goal {
	return b.Records(userID).Goals
}

// AddContribution records money put towards a goal and reconciles its status.
func (b *Book) AddContribution(userID uuid.UUID, c domain.GoalContribution) (domain.GoalContribution, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.goalFor(userID, c.GoalID)
	if err != nil {
		return domain.GoalContribution{}, err
	}
	if c.ContributionDate.IsZero() {
		c.ContributionDate = dateutil.DateOf(b.clock())
	}
	c, err = b.insertContribution(c)
	if err != nil {
		return domain.GoalContribution{}, err
	}
	b.reconcileGoal(i, calculation.ReconcileGoalStatus)
	return c, nil
}

// RemoveContribution deletes a contribution. A completed goal that falls short
// goes back to active; no other status changes.
func (b *Book) RemoveContribution(userID, contributionID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ci := slices.IndexFunc(b.contributions, func(c domain.GoalContribution) bool { return c.ID == contributionID })
	if ci < 0 {
		return notFound("goal contribution", contributionID)
	}
	gi, err := b.goalFor(userID, b.contributions[ci].GoalID)
	if err != nil {
		return notFound("goal contribution", contributionID)
	}

	b.contributions = slices.Delete(b.contributions, ci, ci+1)
	b.reconcileGoal(gi, calculation.ReopenGoalStatus)
	return nil
}

// GoalProgress computes the progress of one of userID's goals as of now.
func (b *Book) GoalProgress(userID, goalID uuid.UUID) (domain.GoalProgressResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, err := b.goalFor(userID, goalID)
	if err != nil {
		return domain.GoalProgressResult{}, err
	}
	return calculation.ComputeGoalProgress(b.goals[i], b.contributionsOf(goalID), b.clock()), nil
}

// reconcileGoal recomputes goal i and applies rule to its status.
// Callers hold the write lock.
func (b *Book) reconcileGoal(i int, rule func(domain.GoalStatus, domain.GoalProgressResult) domain.GoalStatus) {
	goal := b.goals[i]
	result := calculation.ComputeGoalProgress(goal, b.contributionsOf(goal.ID), b.clock())
	status := rule(goal.Status, result)
	if status != goal.Status {
		b.logger.Infof("goal %s: status %s -> %s (%s of %s)", goal.ID, goal.Status, status,
			result.CurrentTotal.StringFixed(2), result.TargetAmount.StringFixed(2))
		b.goals[i].Status = status
	}
}

func (b *Book) contributionsOf(goalID uuid.UUID) []domain.GoalContribution {
	var out []domain.GoalContribution
	for _, c := range b.contributions {
		if c.GoalID == goalID {
			out = append(out, c)
		}
	}
	return out
}

func (b *Book) goalIndex(goalID uuid.UUID) int {
	return slices.IndexFunc(b.goals, func(g domain.Goal) bool { return g.ID == goalID })
}

func (b *Book) goalFor(userID, goalID uuid.UUID) (int, error) {
	i := b.goalIndex(goalID)
	if i < 0 || b.goals[i].UserID != userID {
		return -1, notFound("goal", goalID)
	}
	return i, nil
}

func validateGoal(goal domain.Goal) error {
	if strings.TrimSpace(goal.Name) == "" {
		return &domain.InvalidInputError{Field: "name", Message: "is required"}
	}
	if err := requirePositive("target_amount", goal.TargetAmount); err != nil {
		return err
	}
	if err := requireNonNegative("current_amount", goal.CurrentAmount); err != nil {
		return err
	}
	if !goal.Status.Valid() {
		return &domain.InvalidInputError{Field: "status", Message: "must be active, completed or cancelled"}
	}
	if !goal.Priority.Valid() {
		return &domain.InvalidInputError{Field: "priority", Message: "must be low, medium or high"}
	}
	return nil
}

func (b *Book) insertContribution(c domain.GoalContribution) (domain.GoalContribution, error) {
	if err := requirePositive("amount", c.Amount); err != nil {
		return domain.GoalContribution{}, err
	}
	c.ID = orNewID(c.ID)
	if slices.ContainsFunc(b.contributions, func(existing domain.GoalContribution) bool { return existing.ID == c.ID }) {
		return domain.GoalContribution{}, &domain.InvalidInputError{Field: "id", Message: "already in use"}
	}

	b.contributions = append(b.contributions, c)
	return c, nil
}
