package model

import "time"

// TestResult is a row of one of the per-type result tables ("quiz_results",
// "drawing_results", ...). All of them share this shape for the columns the
// retest engine touches; the table name is chosen by the store.
type TestResult struct {
	ID                 string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	StudentID          string    `json:"student_id" gorm:"type:varchar(64);not null;index"`
	TestID             string    `json:"test_id" gorm:"type:varchar(64);not null;index"`
	Score              float64   `json:"score"`
	Percentage         *float64  `json:"percentage,omitempty"`
	SubmittedAt        time.Time `json:"submitted_at"`
	RetestOffered      bool      `json:"retest_offered" gorm:"not null;default:false"`
	RetestAssignmentID *string   `json:"retest_assignment_id,omitempty" gorm:"type:varchar(64);index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
