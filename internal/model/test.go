package model

import "time"

// Test is the catalog entry of an original test. Content lives with the
// per-type test services; only what retests need is kept here.
type Test struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Type      string    `json:"type" gorm:"type:varchar(32);not null"` // quiz, drawing, speech, matching, ...
	Name      string    `json:"name" gorm:"not null"`
	TeacherID string    `json:"teacher_id" gorm:"type:varchar(64);index"`
	Subject   string    `json:"subject,omitempty"`
	Grade     string    `json:"grade,omitempty"`
	Class     string    `json:"class,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
