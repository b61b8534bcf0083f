package repository

import (
	"github.com/lshigami/schooltest/internal/dbctx"
	"github.com/lshigami/schooltest/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(dbc dbctx.Context, test *model.Test) error
	FindByID(dbc dbctx.Context, id string) (*model.Test, error)
	FindAll(dbc dbctx.Context) ([]model.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(dbc dbctx.Context, test *model.Test) error {
	return dbc.DB(r.db).Create(test).Error
}

// FindByID returns gorm.ErrRecordNotFound when the test does not exist.
func (r *testRepository) FindByID(dbc dbctx.Context, id string) (*model.Test, error) {
	var test model.Test
	if err := dbc.DB(r.db).Where("id = ?", id).First(&test).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAll(dbc dbctx.Context) ([]model.Test, error) {
	var tests []model.Test
	err := dbc.DB(r.db).Order("created_at DESC").Order("id ASC").Find(&tests).Error
	return tests, err
}
