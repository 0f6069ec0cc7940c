package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"gorm.io/gorm"
)

// Fakes embed the interface so only the methods the coordinator touches need
// real bodies; anything else panics loudly.

type fakeAttemptRepo struct {
	repository.AttemptRepository
	attempt *model.TestAttempt
	findErr error
}

func (f *fakeAttemptRepo) FindByID(id uint) (*model.TestAttempt, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.attempt, nil
}

type fakeTestRepo struct {
	repository.TestRepository
	test    *model.Test
	findErr error
}

func (f *fakeTestRepo) FindActiveByID(id uint) (*model.Test, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.test, nil
}

type fakeSubmissionRepo struct {
	saveErr     error
	savedResult *model.Result
	savedRows   []model.Answer
	calls       int
}

func (f *fakeSubmissionRepo) SaveSubmission(answers []model.Answer, result *model.Result, closedAt time.Time) error {
	f.calls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedRows = answers
	f.savedResult = result
	return nil
}

type fakeQuestionBank struct {
	QuestionBankService
	key map[uint]AnswerKeyEntry
}

func (f *fakeQuestionBank) FetchAnswerKey(testID uint) (map[uint]AnswerKeyEntry, error) {
	return f.key, nil
}

func newSubmissionFixture(startedAgo time.Duration) (*submissionService, *fakeSubmissionRepo) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	attempt := &model.TestAttempt{
		ID:        7,
		UserID:    42,
		TestID:    3,
		Status:    model.AttemptStatusStarted,
		StartTime: now.Add(-startedAgo),
	}
	test := &model.Test{
		ID:              3,
		TestTitle:       "Pharmacology Mock 1",
		DurationMinutes: 30,
		TotalMarks:      8,
		IsActive:        true,
	}
	subRepo := &fakeSubmissionRepo{}
	svc := &submissionService{
		testRepo:       &fakeTestRepo{test: test},
		attemptRepo:    &fakeAttemptRepo{attempt: attempt},
		submissionRepo: subRepo,
		questionBank: &fakeQuestionBank{key: map[uint]AnswerKeyEntry{
			1: {CorrectOption: "A", Marks: 4},
			2: {CorrectOption: "B", Marks: 4},
		}},
		grading: NewGradingService(),
		now:     func() time.Time { return now },
	}
	return svc, subRepo
}

func TestSubmit_GradesAndPersists(t *testing.T) {
	svc, subRepo := newSubmissionFixture(10 * time.Minute)

	result, err := svc.Submit(42, 3, 7, []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 2, SelectedOption: "C"},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.MarksObtained != 4 {
		t.Errorf("MarksObtained = %d, want 4", result.MarksObtained)
	}
	if result.Percentage != 50.0 {
		t.Errorf("Percentage = %v, want 50.0", result.Percentage)
	}
	if result.Status != model.ResultStatusPass {
		t.Errorf("Status = %q, want pass", result.Status)
	}
	if result.AttemptID != 7 || result.UserID != 42 || result.TestID != 3 {
		t.Errorf("result identity = (%d,%d,%d), want (7,42,3)", result.AttemptID, result.UserID, result.TestID)
	}
	if len(subRepo.savedRows) != 2 {
		t.Fatalf("saved %d answer rows, want 2", len(subRepo.savedRows))
	}
	for _, row := range subRepo.savedRows {
		if row.AttemptID != 7 {
			t.Errorf("answer row attempt = %d, want 7", row.AttemptID)
		}
		if row.QuestionID == 1 && !row.IsCorrect {
			t.Errorf("question 1 row not marked correct")
		}
		if row.QuestionID == 2 && row.IsCorrect {
			t.Errorf("question 2 row marked correct, want wrong")
		}
	}
}

func TestSubmit_RejectsAfterDeadline(t *testing.T) {
	// 30 minute test plus the grace window, started 31 minutes ago.
	svc, subRepo := newSubmissionFixture(31 * time.Minute)

	_, err := svc.Submit(42, 3, 7, nil)
	if !errors.Is(err, ErrDeadlineExceeded) {
		t.Fatalf("err = %v, want ErrDeadlineExceeded", err)
	}
	if subRepo.calls != 0 {
		t.Errorf("SaveSubmission called %d times after deadline, want 0", subRepo.calls)
	}
}

func TestSubmit_AcceptsInsideGraceWindow(t *testing.T) {
	// 25 seconds past the 30 minute duration, still inside the 30s grace.
	svc, _ := newSubmissionFixture(30*time.Minute + 25*time.Second)

	if _, err := svc.Submit(42, 3, 7, nil); err != nil {
		t.Fatalf("Submit inside grace window returned error: %v", err)
	}
}

func TestSubmit_RejectsCompletedAttempt(t *testing.T) {
	svc, subRepo := newSubmissionFixture(10 * time.Minute)
	svc.attemptRepo.(*fakeAttemptRepo).attempt.Status = model.AttemptStatusCompleted

	_, err := svc.Submit(42, 3, 7, nil)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
	if subRepo.calls != 0 {
		t.Errorf("SaveSubmission called for a completed attempt")
	}
}

func TestSubmit_RejectsForeignAttempt(t *testing.T) {
	svc, _ := newSubmissionFixture(10 * time.Minute)

	_, err := svc.Submit(99, 3, 7, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestSubmit_UnknownAttempt(t *testing.T) {
	svc, _ := newSubmissionFixture(10 * time.Minute)
	svc.attemptRepo.(*fakeAttemptRepo).findErr = gorm.ErrRecordNotFound

	_, err := svc.Submit(42, 3, 7, nil)
	if !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("err = %v, want ErrAttemptNotFound", err)
	}
}

// A lost race on the guarded close surfaces as an invalid state, and the
// caller gets no result back.
func TestSubmit_ConcurrentCloseLosesRace(t *testing.T) {
	svc, subRepo := newSubmissionFixture(10 * time.Minute)
	subRepo.saveErr = gorm.ErrRecordNotFound

	result, err := svc.Submit(42, 3, 7, []SubmittedAnswer{{QuestionID: 1, SelectedOption: "A"}})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil after rollback", result)
	}
}

// The unique index on results.attempt_id reports a concurrent duplicate as
// gorm.ErrDuplicatedKey (the connection is opened with TranslateError, so
// driver unique-violations arrive translated), which must map to the
// invalid-state conflict rather than a retryable storage failure.
func TestSubmit_DuplicateResultLosesRace(t *testing.T) {
	svc, subRepo := newSubmissionFixture(10 * time.Minute)
	subRepo.saveErr = gorm.ErrDuplicatedKey

	_, err := svc.Submit(42, 3, 7, nil)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}
