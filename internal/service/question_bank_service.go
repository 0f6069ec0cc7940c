package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionBankService reads a test's questions and, server-side only, its
// answer key. The public view never carries correct options or explanations.
type QuestionBankService interface {
	FetchTest(testID uint) (*dto.TestMetadataDTO, []dto.QuestionPublicDTO, error)
	FetchAnswerKey(testID uint) (map[uint]AnswerKeyEntry, error)
}

type questionBankService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
}

func NewQuestionBankService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository) QuestionBankService {
	return &questionBankService{testRepo: testRepo, questionRepo: questionRepo}
}

func (s *questionBankService) FetchTest(testID uint) (*dto.TestMetadataDTO, []dto.QuestionPublicDTO, error) {
	test, err := s.testRepo.FindActiveByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTestNotFound
		}
		return nil, nil, fmt.Errorf("fetching test %d: %w", testID, err)
	}

	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching questions for test %d: %w", testID, err)
	}

	var meta dto.TestMetadataDTO
	if err := copier.Copy(&meta, test); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to copy test model to metadata DTO")
		return nil, nil, fmt.Errorf("preparing test metadata: %w", err)
	}

	public := make([]dto.QuestionPublicDTO, len(questions))
	for i, q := range questions {
		public[i] = dto.QuestionPublicDTO{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
			Marks:        q.Marks,
		}
	}
	return &meta, public, nil
}

func (s *questionBankService) FetchAnswerKey(testID uint) (map[uint]AnswerKeyEntry, error) {
	if _, err := s.testRepo.FindActiveByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("fetching test %d: %w", testID, err)
	}

	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return nil, fmt.Errorf("fetching answer key for test %d: %w", testID, err)
	}

	key := make(map[uint]AnswerKeyEntry, len(questions))
	for _, q := range questions {
		key[q.ID] = AnswerKeyEntry{CorrectOption: q.CorrectOption, Marks: q.Marks}
	}
	return key, nil
}
