package model

import "time"

type ScoringPolicy string

const (
	ScoringPolicyBest   ScoringPolicy = "BEST"
	ScoringPolicyLatest ScoringPolicy = "LATEST"
)

const DefaultPassingThreshold float64 = 50

// RetestAssignment is a teacher-issued remedial offer for one original test.
// Only WindowEnd changes after creation (early cancellation).
type RetestAssignment struct {
	ID               string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title            string         `json:"title,omitempty"`
	OriginalTestType string         `json:"original_test_type" gorm:"type:varchar(32);not null"`
	OriginalTestID   string         `json:"original_test_id" gorm:"type:varchar(64);not null;index"`
	TeacherID        string         `json:"teacher_id" gorm:"type:varchar(64);not null;index"`
	Grade            string         `json:"grade,omitempty"`
	Class            string         `json:"class,omitempty"`
	Subject          string         `json:"subject,omitempty"`
	PassingThreshold float64        `json:"passing_threshold" gorm:"not null;default:50"`
	ScoringPolicy    ScoringPolicy  `json:"scoring_policy" gorm:"type:varchar(16);not null;default:'BEST'"`
	MaxAttempts      int            `json:"max_attempts" gorm:"not null"`
	WindowStart      time.Time      `json:"window_start" gorm:"not null"`
	WindowEnd        time.Time      `json:"window_end" gorm:"not null"`
	Targets          []RetestTarget `json:"targets,omitempty" gorm:"foreignKey:AssignmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// InWindow reports whether now lies in [WindowStart, WindowEnd], bounds inclusive.
func (a *RetestAssignment) InWindow(now time.Time) bool {
	return !now.Before(a.WindowStart) && !now.After(a.WindowEnd)
}
