package model

import (
	"time"

	"gorm.io/datatypes"
)

// Attempt is one graded submission of an original test. TestID is always the
// original test, also for retakes. (StudentID, TestID, AttemptNumber) is the upsert key.
type Attempt struct {
	ID                  string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	StudentID           string         `json:"student_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_attempts_student_test_number,priority:1"`
	TestID              string         `json:"test_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_attempts_student_test_number,priority:2;index"`
	AttemptNumber       int            `json:"attempt_number" gorm:"not null;uniqueIndex:idx_attempts_student_test_number,priority:3"`
	RetestAttemptNumber *int           `json:"retest_attempt_number,omitempty"`
	RetestAssignmentID  *string        `json:"retest_assignment_id,omitempty" gorm:"type:varchar(64);index"`
	SubmissionKey       *string        `json:"submission_key,omitempty" gorm:"type:varchar(128);index"`
	Score               float64        `json:"score" gorm:"not null"`
	MaxScore            float64        `json:"max_score" gorm:"not null"`
	Percentage          *float64       `json:"percentage,omitempty"`
	Passed              bool           `json:"passed" gorm:"not null;default:false"`
	Completed           bool           `json:"completed" gorm:"not null;default:false"`
	Answers             datatypes.JSON `json:"answers,omitempty"`
	SubmittedAt         time.Time      `json:"submitted_at" gorm:"not null"`

	// Snapshot taken at submission time so reports do not depend on later edits.
	TestName      string `json:"test_name,omitempty"`
	TestType      string `json:"test_type,omitempty"`
	TeacherID     string `json:"teacher_id,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Grade         string `json:"grade,omitempty"`
	Class         string `json:"class,omitempty"`
	StudentName   string `json:"student_name,omitempty"`
	StudentNumber string `json:"student_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
