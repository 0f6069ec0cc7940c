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

// AttemptService is the attempt ledger: it opens an attempt when a student
// loads a test and closes it exactly once on submission. One attempt per
// student per test.
type AttemptService interface {
	OpenAttempt(userID, testID uint) (*model.TestAttempt, error)
	CloseAttempt(attemptID uint) error
	GetAttempt(attemptID uint) (*model.TestAttempt, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
}

func NewAttemptService(attemptRepo repository.AttemptRepository) AttemptService {
	return &attemptService{attemptRepo: attemptRepo}
}

func (s *attemptService) OpenAttempt(userID, testID uint) (*model.TestAttempt, error) {
	exists, err := s.attemptRepo.ExistsByUserAndTest(userID, testID)
	if err != nil {
		return nil, fmt.Errorf("checking prior attempts: %w", err)
	}
	if exists {
		return nil, ErrAlreadyAttempted
	}

	attempt := &model.TestAttempt{
		UserID: userID,
		TestID: testID,
		Status: model.AttemptStatusStarted,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		// Two concurrent opens race past the existence check; the unique
		// index on (user_id, test_id) lets only one row land.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAttempted
		}
		log.Error().Err(err).Uint("userID", userID).Uint("testID", testID).Msg("Failed to create attempt")
		return nil, fmt.Errorf("creating attempt: %w", err)
	}
	return attempt, nil
}

func (s *attemptService) CloseAttempt(attemptID uint) error {
	err := s.attemptRepo.CloseStarted(nil, attemptID, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidState
	}
	return err
}

func (s *attemptService) GetAttempt(attemptID uint) (*model.TestAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("fetching attempt %d: %w", attemptID, err)
	}
	return attempt, nil
}
