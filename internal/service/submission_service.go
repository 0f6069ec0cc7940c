package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// submissionGrace absorbs network latency between the client-side countdown
// reaching zero and the request arriving.
const submissionGrace = 30 * time.Second

// SubmissionService coordinates a test submission: it grades the answers and
// persists answer rows, the result and the attempt close in one atomic unit.
// On any failure the unit rolls back and the attempt stays started, so the
// client may retry.
type SubmissionService interface {
	Submit(userID, testID uint, attemptID uint, answers []SubmittedAnswer) (*model.Result, error)
}

type submissionService struct {
	testRepo       repository.TestRepository
	attemptRepo    repository.AttemptRepository
	submissionRepo repository.SubmissionRepository
	questionBank   QuestionBankService
	grading        GradingService
	now            func() time.Time
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	submissionRepo repository.SubmissionRepository,
	questionBank QuestionBankService,
	grading GradingService,
) SubmissionService {
	return &submissionService{
		testRepo:       testRepo,
		attemptRepo:    attemptRepo,
		submissionRepo: submissionRepo,
		questionBank:   questionBank,
		grading:        grading,
		now:            time.Now,
	}
}

func (s *submissionService) Submit(userID, testID uint, attemptID uint, answers []SubmittedAnswer) (*model.Result, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.UserID != userID || attempt.TestID != testID {
		return nil, fmt.Errorf("%w: attempt does not belong to this student and test", ErrValidation)
	}
	if attempt.Status != model.AttemptStatusStarted {
		return nil, ErrInvalidState
	}

	test, err := s.testRepo.FindActiveByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("loading test %d: %w", testID, err)
	}

	// The server's recorded start time plus the test duration is the
	// authoritative deadline; client-reported timing is not trusted.
	deadline := attempt.StartTime.Add(time.Duration(test.DurationMinutes)*time.Minute + submissionGrace)
	submittedAt := s.now()
	if submittedAt.After(deadline) {
		log.Warn().Uint("attemptID", attemptID).Time("deadline", deadline).Msg("Submission rejected after deadline")
		return nil, ErrDeadlineExceeded
	}

	key, err := s.questionBank.FetchAnswerKey(testID)
	if err != nil {
		return nil, err
	}

	grade := s.grading.Score(answers, key, test.TotalMarks)

	// One answer row per recognized question, matching the grading view of
	// the submission (last pair wins for duplicates).
	selected := make(map[uint]string, len(answers))
	for _, ans := range answers {
		if _, known := key[ans.QuestionID]; known {
			selected[ans.QuestionID] = ans.SelectedOption
		}
	}
	answerRows := make([]model.Answer, 0, len(selected))
	for questionID, option := range selected {
		answerRows = append(answerRows, model.Answer{
			AttemptID:      attemptID,
			QuestionID:     questionID,
			SelectedOption: option,
			IsCorrect:      grade.Correctness[questionID],
		})
	}

	result := &model.Result{
		AttemptID:     attemptID,
		UserID:        userID,
		TestID:        testID,
		MarksObtained: grade.MarksObtained,
		TotalMarks:    test.TotalMarks,
		Percentage:    grade.Percentage,
		Status:        grade.Status,
	}

	if err := s.submissionRepo.SaveSubmission(answerRows, result, submittedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) {
			// The close guard found no started attempt, or a result already
			// exists: this attempt was submitted concurrently or before.
			return nil, ErrInvalidState
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Submission unit rolled back")
		return nil, fmt.Errorf("persisting submission: %w", err)
	}

	log.Info().
		Uint("attemptID", attemptID).
		Int("marks", grade.MarksObtained).
		Float64("percentage", grade.Percentage).
		Str("status", grade.Status).
		Msg("Test submitted and graded")
	return result, nil
}
