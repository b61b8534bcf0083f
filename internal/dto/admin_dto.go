package dto

import "time"

// RetestAssignmentCreateDTO is the teacher request to offer a retest to a set of students.
type RetestAssignmentCreateDTO struct {
	ID               string    `json:"id,omitempty"` // optional, re-sending the same ID is idempotent
	Title            string    `json:"title,omitempty"`
	OriginalTestType string    `json:"original_test_type" binding:"required"`
	OriginalTestID   string    `json:"original_test_id" binding:"required"`
	Grade            string    `json:"grade,omitempty"`
	Class            string    `json:"class,omitempty"`
	Subject          string    `json:"subject,omitempty"`
	PassingThreshold *float64  `json:"passing_threshold,omitempty"`
	ScoringPolicy    string    `json:"scoring_policy,omitempty" binding:"omitempty,oneof=BEST LATEST"`
	MaxAttempts      int       `json:"max_attempts" binding:"required,min=1"`
	WindowStart      time.Time `json:"window_start" binding:"required"`
	WindowEnd        time.Time `json:"window_end" binding:"required"`
	StudentIDs       []string  `json:"student_ids" binding:"required"`
}

// BestAttemptRefreshDTO asks for a recomputation of one best-attempt row.
type BestAttemptRefreshDTO struct {
	StudentID string `json:"student_id" binding:"required"`
	TestID    string `json:"test_id" binding:"required"`
}

type ExpireTargetsResponseDTO struct {
	AssignmentID string `json:"assignment_id"`
	Expired      int64  `json:"expired"`
}
