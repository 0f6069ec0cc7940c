package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StudentService backs the student-facing dashboard, course and results
// screens.
type StudentService interface {
	Dashboard(userID uint) (*dto.StudentDashboardDTO, error)
	Courses() ([]dto.CourseDTO, error)
	Enroll(userID, courseID uint) error
	AvailableTests(userID uint) ([]dto.AvailableTestDTO, error)
	Results(userID uint) ([]dto.ResultDTO, error)
}

type studentService struct {
	courseRepo  repository.CourseRepository
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	resultRepo  repository.ResultRepository
}

func NewStudentService(
	courseRepo repository.CourseRepository,
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	resultRepo repository.ResultRepository,
) StudentService {
	return &studentService{
		courseRepo:  courseRepo,
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		resultRepo:  resultRepo,
	}
}

func (s *studentService) Dashboard(userID uint) (*dto.StudentDashboardDTO, error) {
	completed, err := s.attemptRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("counting completed tests: %w", err)
	}
	pending, err := s.testRepo.CountPendingForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("counting pending tests: %w", err)
	}
	avg, err := s.resultRepo.AveragePercentageForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("averaging scores: %w", err)
	}
	return &dto.StudentDashboardDTO{
		CompletedTests: completed,
		PendingTests:   pending,
		AvgScore:       math.Round(avg*100) / 100,
	}, nil
}

func (s *studentService) Courses() ([]dto.CourseDTO, error) {
	courses, err := s.courseRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("fetching courses: %w", err)
	}
	dtos := make([]dto.CourseDTO, len(courses))
	for i, c := range courses {
		if err := copier.Copy(&dtos[i], &c); err != nil {
			return nil, fmt.Errorf("preparing course list: %w", err)
		}
	}
	return dtos, nil
}

func (s *studentService) Enroll(userID, courseID uint) error {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("fetching course %d: %w", courseID, err)
	}

	enrolled, err := s.courseRepo.IsEnrolled(userID, courseID)
	if err != nil {
		return fmt.Errorf("checking enrollment: %w", err)
	}
	if enrolled {
		return ErrAlreadyEnrolled
	}

	// The composite unique index backstops a concurrent duplicate enroll.
	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.courseRepo.Enroll(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyEnrolled
		}
		log.Error().Err(err).Uint("userID", userID).Uint("courseID", courseID).Msg("Enrollment failed")
		return fmt.Errorf("enrolling: %w", err)
	}
	return nil
}

func (s *studentService) AvailableTests(userID uint) ([]dto.AvailableTestDTO, error) {
	tests, err := s.testRepo.FindAvailableForUser(userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("fetching available tests: %w", err)
	}
	dtos := make([]dto.AvailableTestDTO, len(tests))
	for i, t := range tests {
		if err := copier.Copy(&dtos[i], &t); err != nil {
			return nil, fmt.Errorf("preparing test list: %w", err)
		}
	}
	return dtos, nil
}

func (s *studentService) Results(userID uint) ([]dto.ResultDTO, error) {
	rows, err := s.resultRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching results: %w", err)
	}
	dtos := make([]dto.ResultDTO, len(rows))
	for i, row := range rows {
		dtos[i] = dto.ResultDTO{
			ID:            row.ID,
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
