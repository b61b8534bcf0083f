package dto

import (
	"time"

	"gorm.io/datatypes"
)

// AttemptResponseDTO is one entry of a student's attempt history for a test.
type AttemptResponseDTO struct {
	ID                  string         `json:"id"`
	TestID              string         `json:"test_id"`
	AttemptNumber       int            `json:"attempt_number"`
	RetestAttemptNumber *int           `json:"retest_attempt_number,omitempty"`
	RetestAssignmentID  *string        `json:"retest_assignment_id,omitempty"`
	Score               float64        `json:"score"`
	MaxScore            float64        `json:"max_score"`
	Percentage          *float64       `json:"percentage,omitempty"`
	Passed              bool           `json:"passed"`
	Completed           bool           `json:"completed"`
	Answers             datatypes.JSON `json:"answers,omitempty" swaggertype:"object"`
	SubmittedAt         time.Time      `json:"submitted_at"`
	TestName            string         `json:"test_name,omitempty"`
	TestType            string         `json:"test_type,omitempty"`
}

type BestAttemptResponseDTO struct {
	StudentID          string    `json:"student_id"`
	TestID             string    `json:"test_id"`
	AttemptID          string    `json:"attempt_id"`
	AttemptNumber      int       `json:"attempt_number"`
	Score              float64   `json:"score"`
	MaxScore           float64   `json:"max_score"`
	Percentage         *float64  `json:"percentage,omitempty"`
	RetestAssignmentID *string   `json:"retest_assignment_id,omitempty"`
	Policy             string    `json:"policy"`
	RefreshedAt        time.Time `json:"refreshed_at"`
}

// TestCreateDTO registers an original test in the catalog so retests can refer to it.
type TestCreateDTO struct {
	ID      string `json:"id,omitempty"`
	Type    string `json:"type" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject,omitempty"`
	Grade   string `json:"grade,omitempty"`
	Class   string `json:"class,omitempty"`
}

type TestResponseDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	TeacherID string    `json:"teacher_id,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Grade     string    `json:"grade,omitempty"`
	Class     string    `json:"class,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
