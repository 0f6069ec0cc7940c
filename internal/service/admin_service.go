package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminService backs user management, test management and the bulk question
// import.
type AdminService interface {
	Dashboard() (*dto.AdminDashboardDTO, error)
	Users(status string) ([]dto.UserResponseDTO, error)
	UpdateUserStatus(userID uint, status string) error
	Tests() ([]dto.TestMetadataDTO, error)
	CreateTest(req dto.TestCreateDTO) (*dto.TestMetadataDTO, error)
	DeleteTest(testID uint) error
	BulkImport(req dto.BulkImportDTO) (int, error)
	AllResults() ([]dto.AdminResultDTO, error)
}

type adminService struct {
	userRepo     repository.UserRepository
	courseRepo   repository.CourseRepository
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	resultRepo   repository.ResultRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	resultRepo repository.ResultRepository,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		courseRepo:   courseRepo,
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		resultRepo:   resultRepo,
	}
}

func (s *adminService) Dashboard() (*dto.AdminDashboardDTO, error) {
	students, err := s.userRepo.CountStudents()
	if err != nil {
		return nil, fmt.Errorf("counting students: %w", err)
	}
	pending, err := s.userRepo.CountByStatus(model.UserStatusPending)
	if err != nil {
		return nil, fmt.Errorf("counting pending users: %w", err)
	}
	activeTests, err := s.testRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("counting active tests: %w", err)
	}
	attempts, err := s.attemptRepo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("counting attempts: %w", err)
	}
	return &dto.AdminDashboardDTO{
		TotalStudents: students,
		PendingUsers:  pending,
		ActiveTests:   activeTests,
		TotalAttempts: attempts,
	}, nil
}

func (s *adminService) Users(status string) ([]dto.UserResponseDTO, error) {
	users, err := s.userRepo.FindStudentsByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	dtos := make([]dto.UserResponseDTO, len(users))
	for i, u := range users {
		if err := copier.Copy(&dtos[i], &u); err != nil {
			return nil, fmt.Errorf("preparing user list: %w", err)
		}
	}
	return dtos, nil
}

func (s *adminService) UpdateUserStatus(userID uint, status string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("fetching user %d: %w", userID, err)
	}
	if err := s.userRepo.UpdateStatus(userID, status); err != nil {
		return fmt.Errorf("updating user status: %w", err)
	}
	log.Info().Uint("userID", userID).Str("status", status).Msg("User status updated")
	return nil
}

func (s *adminService) Tests() ([]dto.TestMetadataDTO, error) {
	tests, err := s.testRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching tests: %w", err)
	}
	dtos := make([]dto.TestMetadataDTO, len(tests))
	for i, t := range tests {
		if err := copier.Copy(&dtos[i], &t); err != nil {
			return nil, fmt.Errorf("preparing test list: %w", err)
		}
	}
	return dtos, nil
}

func (s *adminService) CreateTest(req dto.TestCreateDTO) (*dto.TestMetadataDTO, error) {
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("fetching course %d: %w", req.CourseID, err)
	}

	test := model.Test{
		TestTitle:       req.TestTitle,
		CourseID:        req.CourseID,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		IsActive:        true,
		TestType:        req.TestType,
		AvailableFrom:   req.AvailableFrom,
		AvailableUntil:  req.AvailableUntil,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("title", req.TestTitle).Msg("Failed to create test")
		return nil, fmt.Errorf("creating test: %w", err)
	}

	var resp dto.TestMetadataDTO
	if err := copier.Copy(&resp, &test); err != nil {
		return nil, fmt.Errorf("preparing create response: %w", err)
	}
	return &resp, nil
}

func (s *adminService) DeleteTest(testID uint) error {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTestNotFound
		}
		return fmt.Errorf("fetching test %d: %w", testID, err)
	}
	return s.testRepo.Delete(testID)
}

// BulkImport inserts all questions in one transaction. Marks defaults to 4
// when omitted. The test's declared total marks stays independent of the
// question sum; a mismatch is logged but not rejected.
func (s *adminService) BulkImport(req dto.BulkImportDTO) (int, error) {
	test, err := s.testRepo.FindByID(req.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTestNotFound
		}
		return 0, fmt.Errorf("fetching test %d: %w", req.TestID, err)
	}

	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		marks := 4
		if q.Marks != nil {
			marks = *q.Marks
		}
		questions[i] = model.Question{
			TestID:        req.TestID,
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
			Marks:         marks,
		}
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		log.Error().Err(err).Uint("testID", req.TestID).Msg("Bulk import rolled back")
		return 0, fmt.Errorf("importing questions: %w", err)
	}

	if sum, err := s.questionRepo.SumMarksByTestID(req.TestID); err == nil && sum != int64(test.TotalMarks) {
		log.Warn().
			Uint("testID", req.TestID).
			Int64("questionMarksSum", sum).
			Int("declaredTotal", test.TotalMarks).
			Msg("Question marks do not add up to the test's declared total")
	}

	log.Info().Uint("testID", req.TestID).Int("count", len(questions)).Msg("Questions imported")
	return len(questions), nil
}

func (s *adminService) AllResults() ([]dto.AdminResultDTO, error) {
	rows, err := s.resultRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching results: %w", err)
	}
	dtos := make([]dto.AdminResultDTO, len(rows))
	for i, row := range rows {
		dtos[i] = dto.AdminResultDTO{
			ID:            row.ID,
			UserID:        row.UserID,
			UserName:      row.UserName,
			TestID:        row.TestID,
			TestTitle:     row.TestTitle,
			MarksObtained: row.MarksObtained,
			TotalMarks:    row.TotalMarks,
			Percentage:    row.Percentage,
			Status:        row.Status,
			CreatedAt:     row.CreatedAt,
		}
	}
	return dtos, nil
}
