package repository

import (
	"time"

	"github.com/pharmasuccess/examportal/internal/model"
	"gorm.io/gorm"
)

// SubmissionRepository is the atomic unit behind a graded submission: the
// answer rows, the result row and the attempt close either all land or none
// do. The attempt close reuses the started->completed guard, so a completed
// attempt makes the whole unit fail and roll back.
type SubmissionRepository interface {
	SaveSubmission(answers []model.Answer, result *model.Result, closedAt time.Time) error
}

type submissionRepository struct {
	db          *gorm.DB
	attemptRepo AttemptRepository
}

func NewSubmissionRepository(db *gorm.DB, attemptRepo AttemptRepository) SubmissionRepository {
	return &submissionRepository{db: db, attemptRepo: attemptRepo}
}

func (r *submissionRepository) SaveSubmission(answers []model.Answer, result *model.Result, closedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		return r.attemptRepo.CloseStarted(tx, result.AttemptID, closedAt)
	})
}
