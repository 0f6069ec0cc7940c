package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/repository"
	"gorm.io/gorm"
)

type fakeAttemptLedger struct {
	repository.AttemptRepository
	exists    bool
	created   *model.TestAttempt
	createErr error
	closeErr  error
}

func (f *fakeAttemptLedger) ExistsByUserAndTest(userID, testID uint) (bool, error) {
	return f.exists, nil
}

func (f *fakeAttemptLedger) Create(attempt *model.TestAttempt) error {
	if f.createErr != nil {
		return f.createErr
	}
	attempt.ID = 7
	f.created = attempt
	return nil
}

func (f *fakeAttemptLedger) CloseStarted(tx *gorm.DB, attemptID uint, endTime time.Time) error {
	return f.closeErr
}

func TestOpenAttempt(t *testing.T) {
	repo := &fakeAttemptLedger{}
	svc := NewAttemptService(repo)

	attempt, err := svc.OpenAttempt(42, 3)
	if err != nil {
		t.Fatalf("OpenAttempt: %v", err)
	}
	if attempt.ID != 7 {
		t.Errorf("attempt ID = %d, want 7", attempt.ID)
	}
	if attempt.Status != model.AttemptStatusStarted {
		t.Errorf("status = %q, want started", attempt.Status)
	}
	if repo.created.UserID != 42 || repo.created.TestID != 3 {
		t.Errorf("created attempt for (%d,%d), want (42,3)", repo.created.UserID, repo.created.TestID)
	}
}

func TestOpenAttempt_SecondAttemptRejected(t *testing.T) {
	svc := NewAttemptService(&fakeAttemptLedger{exists: true})

	_, err := svc.OpenAttempt(42, 3)
	if !errors.Is(err, ErrAlreadyAttempted) {
		t.Fatalf("err = %v, want ErrAlreadyAttempted", err)
	}
}

// Two opens racing past the existence check both reach Create; the unique
// index on (user_id, test_id) stops the loser, which must surface as the
// already-attempted conflict rather than a storage failure.
func TestOpenAttempt_ConcurrentOpenLosesRace(t *testing.T) {
	svc := NewAttemptService(&fakeAttemptLedger{createErr: gorm.ErrDuplicatedKey})

	_, err := svc.OpenAttempt(42, 3)
	if !errors.Is(err, ErrAlreadyAttempted) {
		t.Fatalf("err = %v, want ErrAlreadyAttempted", err)
	}
}

func TestCloseAttempt_AlreadyClosed(t *testing.T) {
	svc := NewAttemptService(&fakeAttemptLedger{closeErr: gorm.ErrRecordNotFound})

	if err := svc.CloseAttempt(7); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}
