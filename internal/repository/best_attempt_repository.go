package repository

import (
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BestAttemptRepository interface {
	Upsert(dbc dbctx.Context, best *model.BestAttempt) error
	Delete(dbc dbctx.Context, studentID, testID string) error
	Find(dbc dbctx.Context, studentID, testID string) (*model.BestAttempt, error)
}

type bestAttemptRepository struct {
	db *gorm.DB
}

func NewBestAttemptRepository(db *gorm.DB) BestAttemptRepository {
	return &bestAttemptRepository{db: db}
}

func (r *bestAttemptRepository) Upsert(dbc dbctx.Context, best *model.BestAttempt) error {
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "test_id"}},
			UpdateAll: true,
		}).
		Create(best).Error
}

func (r *bestAttemptRepository) Delete(dbc dbctx.Context, studentID, testID string) error {
	return dbc.DB(r.db).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		Delete(&model.BestAttempt{}).Error
}

func (r *bestAttemptRepository) Find(dbc dbctx.Context, studentID, testID string) (*model.BestAttempt, error) {
	var best model.BestAttempt
	err := dbc.DB(r.db).
		Where("student_id = ? AND test_id = ?", studentID, testID).
		First(&best).Error
	if err != nil {
		return nil, err
	}
	return &best, nil
}
