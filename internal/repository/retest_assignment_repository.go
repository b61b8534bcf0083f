package repository

import (
	"time"

	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RetestAssignmentRepository interface {
	// Create inserts the assignment unless its ID already exists; created
	// reports whether a row was written.
	Create(dbc dbctx.Context, assignment *model.RetestAssignment) (created bool, err error)
	FindByID(dbc dbctx.Context, id string) (*model.RetestAssignment, error)
	// ShortenWindow sets window_end = max(window_start, min(window_end, now)).
	ShortenWindow(dbc dbctx.Context, id string, now time.Time) error
}

type retestAssignmentRepository struct {
	db *gorm.DB
}

func NewRetestAssignmentRepository(db *gorm.DB) RetestAssignmentRepository {
	return &retestAssignmentRepository{db: db}
}

func (r *retestAssignmentRepository) Create(dbc dbctx.Context, assignment *model.RetestAssignment) (bool, error) {
	res := dbc.DB(r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(assignment)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *retestAssignmentRepository) FindByID(dbc dbctx.Context, id string) (*model.RetestAssignment, error) {
	var assignment model.RetestAssignment
	if err := dbc.DB(r.db).Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *retestAssignmentRepository) ShortenWindow(dbc dbctx.Context, id string, now time.Time) error {
	res := dbc.DB(r.db).
		Model(&model.RetestAssignment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"window_end": gorm.Expr(
				"CASE WHEN window_end <= ? THEN window_end WHEN window_start > ? THEN window_start ELSE ? END",
				now, now, now,
			),
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
