package repository

import (
	"time"

	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TargetTransition is the write-back of one lifecycle step. ExpectedAttemptNumber
// is the counter value the decision was computed from.
type TargetTransition struct {
	AssignmentID          string
	StudentID             string
	ExpectedAttemptNumber int
	AttemptNumber         int
	Status                model.TargetStatus
	Passed                bool
	Completed             bool
	At                    time.Time
}

type RetestTargetRepository interface {
	// CreateMissing inserts targets, skipping (assignment, student) pairs that exist.
	CreateMissing(dbc dbctx.Context, targets []*model.RetestTarget) (int64, error)
	FindByAssignmentAndStudent(dbc dbctx.Context, assignmentID, studentID string) (*model.RetestTarget, error)
	ListByAssignment(dbc dbctx.Context, assignmentID string) ([]model.RetestTarget, error)
	// MaxReservedAttemptNumber is the highest attempt-log number any retest of
	// (student, original test) may still write.
	MaxReservedAttemptNumber(dbc dbctx.Context, studentID, testID string) (int, error)
	// ApplyTransition is the only lifecycle write. It returns rows affected;
	// zero means the row is gone or was advanced concurrently.
	ApplyTransition(dbc dbctx.Context, tr TargetTransition) (int64, error)
	ExpireOpen(dbc dbctx.Context, assignmentID string, now time.Time) (int64, error)
}

type retestTargetRepository struct {
	db *gorm.DB
}

func NewRetestTargetRepository(db *gorm.DB) RetestTargetRepository {
	return &retestTargetRepository{db: db}
}

func (r *retestTargetRepository) CreateMissing(dbc dbctx.Context, targets []*model.RetestTarget) (int64, error) {
	if len(targets) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(targets)
	return res.RowsAffected, res.Error
}

func (r *retestTargetRepository) FindByAssignmentAndStudent(dbc dbctx.Context, assignmentID, studentID string) (*model.RetestTarget, error) {
	var target model.RetestTarget
	err := dbc.DB(r.db).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&target).Error
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *retestTargetRepository) ListByAssignment(dbc dbctx.Context, assignmentID string) ([]model.RetestTarget, error) {
	var targets []model.RetestTarget
	err := dbc.DB(r.db).
		Where("assignment_id = ?", assignmentID).
		Order("student_id ASC").
		Find(&targets).Error
	return targets, err
}

func (r *retestTargetRepository) MaxReservedAttemptNumber(dbc dbctx.Context, studentID, testID string) (int, error) {
	var reserved int
	err := dbc.DB(r.db).
		Table("retest_targets AS t").
		Joins("JOIN retest_assignments AS a ON a.id = t.assignment_id").
		Where("t.student_id = ? AND a.original_test_id = ?", studentID, testID).
		Select("COALESCE(MAX(t.attempt_base + t.max_attempts), 0)").
		Scan(&reserved).Error
	return reserved, err
}

func (r *retestTargetRepository) ApplyTransition(dbc dbctx.Context, tr TargetTransition) (int64, error) {
	updates := map[string]interface{}{
		"attempt_number":  tr.AttemptNumber,
		"status":          tr.Status,
		"passed":          tr.Passed,
		"is_completed":    tr.Completed,
		"last_attempt_at": tr.At,
		"updated_at":      tr.At,
	}
	if tr.Completed {
		updates["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", tr.At)
	}
	res := dbc.DB(r.db).
		Model(&model.RetestTarget{}).
		Where("assignment_id = ? AND student_id = ?", tr.AssignmentID, tr.StudentID).
		Where("attempt_number = ? AND is_completed = ?", tr.ExpectedAttemptNumber, false).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *retestTargetRepository) ExpireOpen(dbc dbctx.Context, assignmentID string, now time.Time) (int64, error) {
	res := dbc.DB(r.db).
		Model(&model.RetestTarget{}).
		Where("assignment_id = ? AND is_completed = ?", assignmentID, false).
		Updates(map[string]interface{}{
			"status":       model.TargetStatusExpired,
			"is_completed": true,
			"completed_at": gorm.Expr("COALESCE(completed_at, ?)", now),
			"updated_at":   now,
		})
	return res.RowsAffected, res.Error
}
