package service

import (
	"errors"
	"testing"

	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"gorm.io/gorm"
)

type fakeCourseRepo struct {
	repository.CourseRepository
	course    *model.Course
	enrolled  bool
	enrollErr error
	enrolls   int
}

func (f *fakeCourseRepo) FindByID(id uint) (*model.Course, error) {
	if f.course == nil || f.course.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.course, nil
}

func (f *fakeCourseRepo) IsEnrolled(userID, courseID uint) (bool, error) {
	return f.enrolled, nil
}

func (f *fakeCourseRepo) Enroll(enrollment *model.Enrollment) error {
	f.enrolls++
	return f.enrollErr
}

func newEnrollFixture() (*studentService, *fakeCourseRepo) {
	courseRepo := &fakeCourseRepo{course: &model.Course{ID: 5, CourseName: "D.Pharm Year 1"}}
	return &studentService{courseRepo: courseRepo}, courseRepo
}

func TestEnroll(t *testing.T) {
	svc, courseRepo := newEnrollFixture()

	if err := svc.Enroll(42, 5); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if courseRepo.enrolls != 1 {
		t.Errorf("Enroll called %d times, want 1", courseRepo.enrolls)
	}
}

func TestEnroll_UnknownCourse(t *testing.T) {
	svc, _ := newEnrollFixture()

	if err := svc.Enroll(42, 99); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestEnroll_AlreadyEnrolled(t *testing.T) {
	svc, courseRepo := newEnrollFixture()
	courseRepo.enrolled = true

	if err := svc.Enroll(42, 5); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("err = %v, want ErrAlreadyEnrolled", err)
	}
	if courseRepo.enrolls != 0 {
		t.Errorf("Enroll reached the store %d times despite existing enrollment, want 0", courseRepo.enrolls)
	}
}

// Two enrolls racing past the pre-check both reach the store; the composite
// unique index stops the loser, surfacing through gorm's translated
// duplicate-key error as the same friendly conflict.
func TestEnroll_ConcurrentDuplicateLosesRace(t *testing.T) {
	svc, courseRepo := newEnrollFixture()
	courseRepo.enrollErr = gorm.ErrDuplicatedKey

	if err := svc.Enroll(42, 5); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("err = %v, want ErrAlreadyEnrolled", err)
	}
}
