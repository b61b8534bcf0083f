package repository

import (
	"github.com/google/uuid"
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bestAttemptOrder ranks graded attempts above ungraded ones, then by
// percentage, and prefers the earliest attempt on ties.
const bestAttemptOrder = "CASE WHEN percentage IS NULL THEN 1 ELSE 0 END ASC, percentage DESC, attempt_number ASC"

type AttemptRepository interface {
	// Upsert inserts the attempt or overwrites the row with the same
	// (student_id, test_id, attempt_number).
	Upsert(dbc dbctx.Context, attempt *model.Attempt) error
	FindByKey(dbc dbctx.Context, studentID, testID string, attemptNumber int) (*model.Attempt, error)
	FindBySubmissionKey(dbc dbctx.Context, studentID, testID, key string) (*model.Attempt, error)
	MaxAttemptNumber(dbc dbctx.Context, studentID, testID string) (int, error)
	ListByStudentAndTest(dbc dbctx.Context, studentID, testID string) ([]model.Attempt, error)
	FindBest(dbc dbctx.Context, studentID, testID string) (*model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Upsert(dbc dbctx.Context, attempt *model.Attempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "test_id"}, {Name: "attempt_number"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"retest_attempt_number",
				"retest_assignment_id",
				"submission_key",
				"score",
				"max_score",
				"percentage",
				"passed",
				"completed",
				"answers",
				"submitted_at",
				"test_name",
				"test_type",
				"teacher_id",
				"subject",
				"grade",
				"class",
				"student_name",
				"student_number",
				"updated_at",
			}),
		}).
		Create(attempt).Error
}

func (r *attemptRepository) FindByKey(dbc dbctx.Context, studentID, testID string, attemptNumber int) (*model.Attempt, error) {
	var attempt model.Attempt
	err := dbc.DB(r.db).
		Where("student_id = ? AND test_id = ? AND attempt_number = ?", studentID, testID, attemptNumber).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindBySubmissionKey(dbc dbctx.Context, studentID, testID, key string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := dbc.DB(r.db).
		Where("student_id = ? AND test_id = ? AND submission_key = ?", studentID, testID, key).
		Order("attempt_number DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) MaxAttemptNumber(dbc dbctx.Context, studentID, testID string) (int, error) {
	var maxNumber int
	err := dbc.DB(r.db).
		Model(&model.Attempt{}).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		Select("COALESCE(MAX(attempt_number), 0)").
		Scan(&maxNumber).Error
	return maxNumber, err
}

func (r *attemptRepository) ListByStudentAndTest(dbc dbctx.Context, studentID, testID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := dbc.DB(r.db).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		Order("attempt_number ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindBest(dbc dbctx.Context, studentID, testID string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := dbc.DB(r.db).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		Order(bestAttemptOrder).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
