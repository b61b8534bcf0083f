package model

import "time"

type TargetStatus string

const (
	TargetStatusPending    TargetStatus = "PENDING"
	TargetStatusInProgress TargetStatus = "IN_PROGRESS"
	TargetStatusPassed     TargetStatus = "PASSED"
	TargetStatusFailed     TargetStatus = "FAILED"
	TargetStatusExpired    TargetStatus = "EXPIRED"
)

// Terminal reports whether no further attempts can change the status.
func (s TargetStatus) Terminal() bool {
	return s == TargetStatusPassed || s == TargetStatusFailed || s == TargetStatusExpired
}

// RetestTarget is one student's progress against a RetestAssignment.
// Rows are never deleted.
type RetestTarget struct {
	ID            string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	AssignmentID  string       `json:"assignment_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_retest_targets_assignment_student,priority:1"`
	StudentID     string       `json:"student_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_retest_targets_assignment_student,priority:2;index"`
	AttemptNumber int          `json:"attempt_number" gorm:"not null;default:0"`
	MaxAttempts   int          `json:"max_attempts" gorm:"not null"`
	AttemptBase   int          `json:"attempt_base" gorm:"not null;default:0"` // attempt log offset, see AttemptLogNumber
	IsCompleted   bool         `json:"is_completed" gorm:"not null;default:false"`
	Passed        bool         `json:"passed" gorm:"not null;default:false"`
	Status        TargetStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	LastAttemptAt *time.Time   `json:"last_attempt_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// EffectiveMaxAttempts prefers the snapshot taken at target creation.
func (t *RetestTarget) EffectiveMaxAttempts(a *RetestAssignment) int {
	if t.MaxAttempts > 0 {
		return t.MaxAttempts
	}
	if a != nil {
		return a.MaxAttempts
	}
	return 0
}

// AttemptLogNumber maps a target-relative attempt number onto the shared
// (student, test) attempt log so retakes never reuse the original sitting's number.
func (t *RetestTarget) AttemptLogNumber(retestAttemptNumber int) int {
	return t.AttemptBase + retestAttemptNumber
}
