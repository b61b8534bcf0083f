package service

import (
	"time"

	"github.com/lshigami/schooltest/internal/apperr"
	"github.com/lshigami/schooltest/internal/model"
)

// Clock is injected so window checks are testable.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now().UTC() }

// Transition is the outcome of one lifecycle step for a retest target.
type Transition struct {
	NextAttemptNumber int
	Passed            bool
	Completed         bool
	Status            model.TargetStatus
}

// CheckEligibility is the gate every retest submission passes, in order:
// window, already passed or expired, attempt cap, any other completion.
func CheckEligibility(target *model.RetestTarget, assignment *model.RetestAssignment, now time.Time) error {
	const op = "CheckEligibility"
	if !assignment.InWindow(now) {
		return apperr.New(apperr.KindWindowClosed, op, "retest %s is not open at %s", assignment.ID, now.Format(time.RFC3339))
	}
	if target.Passed || target.Status == model.TargetStatusPassed || target.Status == model.TargetStatusExpired {
		return apperr.New(apperr.KindAlreadyCompleted, op, "retest already %s for student %s", target.Status, target.StudentID)
	}
	if maxAttempts := target.EffectiveMaxAttempts(assignment); target.AttemptNumber >= maxAttempts {
		return apperr.New(apperr.KindAttemptsExhausted, op, "all %d attempts used", maxAttempts)
	}
	if target.IsCompleted {
		return apperr.New(apperr.KindAlreadyCompleted, op, "retest already completed for student %s", target.StudentID)
	}
	return nil
}

// IsPassing treats an ungraded attempt as a pass.
func IsPassing(percentage *float64, threshold float64) bool {
	if percentage == nil {
		return true
	}
	return *percentage >= threshold
}

// Advance computes the next target state. It does not mutate target.
func Advance(target *model.RetestTarget, assignment *model.RetestAssignment, percentage *float64, now time.Time) (Transition, error) {
	if err := CheckEligibility(target, assignment, now); err != nil {
		return Transition{}, err
	}
	maxAttempts := target.EffectiveMaxAttempts(assignment)
	passed := IsPassing(percentage, assignment.PassingThreshold)

	next := target.AttemptNumber + 1
	if passed {
		next = maxAttempts
	}
	completed := passed || next >= maxAttempts

	status := model.TargetStatusInProgress
	switch {
	case passed:
		status = model.TargetStatusPassed
	case completed:
		status = model.TargetStatusFailed
	}
	return Transition{NextAttemptNumber: next, Passed: passed, Completed: completed, Status: status}, nil
}
