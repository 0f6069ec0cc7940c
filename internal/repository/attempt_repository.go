package repository

import (
	"time"

	"github.com/pharmasuccess/examportal/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	FindByID(id uint) (*model.TestAttempt, error)
	ExistsByUserAndTest(userID, testID uint) (bool, error)
	// CloseStarted flips started->completed with a guarded update. It reports
	// zero affected rows as gorm.ErrRecordNotFound so callers can translate
	// that into an invalid-state failure. tx may be a transaction handle.
	CloseStarted(tx *gorm.DB, attemptID uint, endTime time.Time) error
	CountCompletedByUser(userID uint) (int64, error)
	CountAll() (int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) ExistsByUserAndTest(userID, testID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Count(&count).Error
	return count > 0, err
}

func (r *attemptRepository) CloseStarted(tx *gorm.DB, attemptID uint, endTime time.Time) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&model.TestAttempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusStarted).
		Updates(map[string]interface{}{
			"status":   model.AttemptStatusCompleted,
			"end_time": endTime,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *attemptRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).
		Where("user_id = ? AND status = ?", userID, model.AttemptStatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *attemptRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).Count(&count).Error
	return count, err
}
