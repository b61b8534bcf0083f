package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/schooltest/internal/model"
	"gorm.io/gorm"
)

func SeedTest(tb testing.TB, db *gorm.DB, id, testType string) *model.Test {
	tb.Helper()
	test := &model.Test{ID: id, Type: testType, Name: "Test " + id, TeacherID: "teacher-1", Subject: "math", Grade: "5", Class: "5A"}
	if err := db.Create(test).Error; err != nil {
		tb.Fatalf("seed test: %v", err)
	}
	return test
}

// SeedResult inserts a row into one of the per-type result tables.
func SeedResult(tb testing.TB, db *gorm.DB, table, studentID, testID string, percentage float64, submittedAt time.Time) *model.TestResult {
	tb.Helper()
	row := &model.TestResult{
		ID:          uuid.NewString(),
		StudentID:   studentID,
		TestID:      testID,
		Score:       percentage,
		Percentage:  &percentage,
		SubmittedAt: submittedAt.UTC(),
	}
	if err := db.Table(table).Create(row).Error; err != nil {
		tb.Fatalf("seed result: %v", err)
	}
	return row
}

func LoadResult(tb testing.TB, db *gorm.DB, table, id string) *model.TestResult {
	tb.Helper()
	var row model.TestResult
	if err := db.Table(table).Where("id = ?", id).Take(&row).Error; err != nil {
		tb.Fatalf("load result: %v", err)
	}
	return &row
}

// SeedAttempt writes an attempt directly, bypassing the submission flow.
func SeedAttempt(tb testing.TB, db *gorm.DB, studentID, testID string, number int, percentage *float64) *model.Attempt {
	tb.Helper()
	a := &model.Attempt{
		ID:            uuid.NewString(),
		StudentID:     studentID,
		TestID:        testID,
		AttemptNumber: number,
		Score:         0,
		MaxScore:      100,
		Percentage:    percentage,
		Completed:     true,
		SubmittedAt:   time.Now().UTC(),
	}
	if percentage != nil {
		a.Score = *percentage
	}
	if err := db.Create(a).Error; err != nil {
		tb.Fatalf("seed attempt: %v", err)
	}
	return a
}

func Float(v float64) *float64 { return &v }
