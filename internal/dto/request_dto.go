package dto

import "encoding/json"

// SubmissionDTO is one graded submission of an original test or of its retest.
type SubmissionDTO struct {
	StudentID          string          `json:"student_id,omitempty"` // defaults to the caller
	TestID             string          `json:"test_id" binding:"required"`
	RetestAssignmentID *string         `json:"retest_assignment_id,omitempty"`
	SubmissionKey      *string         `json:"submission_key,omitempty"`
	Score              float64         `json:"score"`
	MaxScore           float64         `json:"max_score"`
	Completed          bool            `json:"completed"`
	Answers            json.RawMessage `json:"answers,omitempty" swaggertype:"object"`
	StudentName        string          `json:"student_name,omitempty"`
	StudentNumber      string          `json:"student_number,omitempty"`
}
