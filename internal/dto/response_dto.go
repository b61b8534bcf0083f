package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

type RetestAssignmentResponseDTO struct {
	ID               string    `json:"id"`
	Title            string    `json:"title,omitempty"`
	OriginalTestType string    `json:"original_test_type"`
	OriginalTestID   string    `json:"original_test_id"`
	TeacherID        string    `json:"teacher_id"`
	Grade            string    `json:"grade,omitempty"`
	Class            string    `json:"class,omitempty"`
	Subject          string    `json:"subject,omitempty"`
	PassingThreshold float64   `json:"passing_threshold"`
	ScoringPolicy    string    `json:"scoring_policy"`
	MaxAttempts      int       `json:"max_attempts"`
	WindowStart      time.Time `json:"window_start"`
	WindowEnd        time.Time `json:"window_end"`
	TargetCount      int       `json:"target_count,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type RetestTargetResponseDTO struct {
	ID            string     `json:"id"`
	AssignmentID  string     `json:"assignment_id"`
	StudentID     string     `json:"student_id"`
	AttemptNumber int        `json:"attempt_number"`
	MaxAttempts   int        `json:"max_attempts"`
	IsCompleted   bool       `json:"is_completed"`
	Passed        bool       `json:"passed"`
	Status        string     `json:"status"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
}

// RetestTargetDetailDTO is a target together with its assignment.
type RetestTargetDetailDTO struct {
	Target     RetestTargetResponseDTO     `json:"target"`
	Assignment RetestAssignmentResponseDTO `json:"assignment"`
}

// SubmissionResultDTO is the outcome of Submit. AttemptNumber is the number
// within the retest for retest submissions, the log number otherwise.
type SubmissionResultDTO struct {
	AttemptID        string   `json:"attempt_id"`
	AttemptNumber    int      `json:"attempt_number"`
	LogAttemptNumber int      `json:"log_attempt_number"`
	Passed           bool     `json:"passed"`
	Completed        bool     `json:"completed"`
	Status           string   `json:"status,omitempty"`
	Percentage       *float64 `json:"percentage,omitempty"`
	Retry            bool     `json:"retry"`
}
