package repository

import (
	"time"

	"github.com/pharmasuccess/examportal/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	Delete(id uint) error
	FindByID(id uint) (*model.Test, error)
	FindActiveByID(id uint) (*model.Test, error)
	FindAll() ([]model.Test, error)
	FindAvailableForUser(userID uint, now time.Time) ([]model.Test, error)
	CountPendingForUser(userID uint) (int64, error)
	CountActive() (int64, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) Delete(id uint) error {
	return r.db.Delete(&model.Test{}, id).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindActiveByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&test).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindAll() ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Order("created_at DESC").Find(&tests).Error
	return tests, err
}

// FindAvailableForUser returns active tests inside their availability window,
// for courses the user is enrolled in, that the user has not attempted yet.
func (r *testRepository) FindAvailableForUser(userID uint, now time.Time) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Joins("JOIN enrollments ON enrollments.course_id = tests.course_id").
		Where("enrollments.user_id = ?", userID).
		Where("tests.is_active = ?", true).
		Where("tests.available_from IS NULL OR tests.available_from <= ?", now).
		Where("tests.available_until IS NULL OR tests.available_until >= ?", now).
		Where("NOT EXISTS (SELECT 1 FROM test_attempts ta WHERE ta.test_id = tests.id AND ta.user_id = ? AND ta.deleted_at IS NULL)", userID).
		Order("tests.created_at DESC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) CountPendingForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Test{}).
		Joins("JOIN enrollments ON enrollments.course_id = tests.course_id").
		Where("enrollments.user_id = ?", userID).
		Where("tests.is_active = ?", true).
		Where("NOT EXISTS (SELECT 1 FROM test_attempts ta WHERE ta.test_id = tests.id AND ta.user_id = ? AND ta.deleted_at IS NULL)", userID).
		Count(&count).Error
	return count, err
}

func (r *testRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Test{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
