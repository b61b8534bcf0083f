package model

import "time"

// BestAttempt is the materialized best Attempt per (student, test).
type BestAttempt struct {
	StudentID          string        `gorm:"primaryKey;type:varchar(64)" json:"student_id"`
	TestID             string        `gorm:"primaryKey;type:varchar(64)" json:"test_id"`
	AttemptID          string        `json:"attempt_id" gorm:"type:varchar(64);not null"`
	AttemptNumber      int           `json:"attempt_number" gorm:"not null"`
	Score              float64       `json:"score"`
	MaxScore           float64       `json:"max_score"`
	Percentage         *float64      `json:"percentage,omitempty"`
	RetestAssignmentID *string       `json:"retest_assignment_id,omitempty" gorm:"type:varchar(64)"`
	Policy             ScoringPolicy `json:"policy" gorm:"type:varchar(16);not null;default:'BEST'"`
	RefreshedAt        time.Time     `json:"refreshed_at"`
}
