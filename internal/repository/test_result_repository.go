package repository

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/model"
	"gorm.io/gorm"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// TestResultStore is the retest-facing view of one per-type result table.
type TestResultStore interface {
	Table() string
	// FlagRetestOffered marks the student's most recent result for the test.
	FlagRetestOffered(dbc dbctx.Context, studentID, testID string) (int64, error)
	// StampRetestReference writes the assignment ID onto every result row of
	// the student for the test.
	StampRetestReference(dbc dbctx.Context, studentID, testID, assignmentID string) (int64, error)
}

type TestResultStores []TestResultStore

type testResultStore struct {
	db    *gorm.DB
	table string
}

// NewTestResultStores builds one store per configured result table.
func NewTestResultStores(db *gorm.DB, tables []string) (TestResultStores, error) {
	stores := make(TestResultStores, 0, len(tables))
	for _, table := range tables {
		if !tableNamePattern.MatchString(table) {
			return nil, fmt.Errorf("invalid result table name %q", table)
		}
		stores = append(stores, &testResultStore{db: db, table: table})
	}
	return stores, nil
}

func (s *testResultStore) Table() string { return s.table }

func (s *testResultStore) FlagRetestOffered(dbc dbctx.Context, studentID, testID string) (int64, error) {
	var latest model.TestResult
	err := dbc.DB(s.db).
		Table(s.table).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		Order("submitted_at DESC").
		Order("created_at DESC").
		Take(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	res := dbc.DB(s.db).
		Table(s.table).
		Where("id = ?", latest.ID).
		Updates(map[string]interface{}{"retest_offered": true, "updated_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}

func (s *testResultStore) StampRetestReference(dbc dbctx.Context, studentID, testID, assignmentID string) (int64, error) {
	res := dbc.DB(s.db).
		Table(s.table).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		Updates(map[string]interface{}{"retest_assignment_id": assignmentID, "updated_at": time.Now().UTC()})
	return res.RowsAffected, res.Error
}
