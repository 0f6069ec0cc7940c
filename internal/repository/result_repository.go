package repository

import (
	"github.com/pharmasuccess/examportal/internal/model"
	"gorm.io/gorm"
)

// ResultRow is a result joined with its test title for student listings.
type ResultRow struct {
	model.Result
	TestTitle string
}

// AdminResultRow additionally carries the student's name.
type AdminResultRow struct {
	model.Result
	TestTitle string
	UserName  string
}

type ResultRepository interface {
	FindAllByUser(userID uint) ([]ResultRow, error)
	FindAll() ([]AdminResultRow, error)
	AveragePercentageForUser(userID uint) (float64, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) FindAllByUser(userID uint) ([]ResultRow, error) {
	var rows []ResultRow
	err := r.db.Model(&model.Result{}).
		Select("results.*, tests.test_title AS test_title").
		Joins("JOIN tests ON tests.id = results.test_id").
		Where("results.user_id = ?", userID).
		Order("results.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) FindAll() ([]AdminResultRow, error) {
	var rows []AdminResultRow
	err := r.db.Model(&model.Result{}).
		Select("results.*, tests.test_title AS test_title, users.full_name AS user_name").
		Joins("JOIN tests ON tests.id = results.test_id").
		Joins("JOIN users ON users.id = results.user_id").
		Order("results.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) AveragePercentageForUser(userID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&model.Result{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(percentage), 0)").
		Scan(&avg).Error
	return avg, err
}
