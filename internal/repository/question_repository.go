package repository

import (
	"github.com/pharmasuccess/examportal/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id uint) (*model.Question, error)
	FindByTestID(testID uint) ([]model.Question, error)
	CreateBatch(questions []model.Question) error
	UpdateExplanation(id uint, explanation string) error
	SumMarksByTestID(testID uint) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByTestID(testID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("test_id = ?", testID).Order("id ASC").Find(&questions).Error
	return questions, err
}

// CreateBatch inserts all questions in one transaction; a bad row aborts the
// whole import.
func (r *questionRepository) CreateBatch(questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

func (r *questionRepository) UpdateExplanation(id uint, explanation string) error {
	return r.db.Model(&model.Question{}).Where("id = ?", id).Update("explanation", explanation).Error
}

func (r *questionRepository) SumMarksByTestID(testID uint) (int64, error) {
	var sum int64
	err := r.db.Model(&model.Question{}).
		Where("test_id = ?", testID).
		Select("COALESCE(SUM(marks), 0)").
		Scan(&sum).Error
	return sum, err
}
