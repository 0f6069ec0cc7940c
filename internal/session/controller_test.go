package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/pharmasuccess/examportal/internal/dto"
)

type fakeSubmitter struct {
	mu        sync.Mutex
	calls     int
	testID    uint
	attemptID uint
	answers   []dto.SubmittedAnswerDTO
	err       error
}

func (f *fakeSubmitter) SubmitTest(testID, attemptID uint, answers []dto.SubmittedAnswerDTO) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.testID = testID
	f.attemptID = attemptID
	f.answers = answers
	return f.err
}

func newTestSession(durationMinutes int, questionIDs ...uint) *dto.TestSessionDTO {
	questions := make([]dto.QuestionPublicDTO, 0, len(questionIDs))
	for _, id := range questionIDs {
		questions = append(questions, dto.QuestionPublicDTO{ID: id, Marks: 4})
	}
	return &dto.TestSessionDTO{
		Test: dto.TestMetadataDTO{
			ID:              3,
			TestTitle:       "Pharmacology Mock 1",
			DurationMinutes: durationMinutes,
		},
		Questions: questions,
		AttemptID: 7,
	}
}

func TestAutoSubmitOnceAtZero(t *testing.T) {
	submitter := &fakeSubmitter{}
	c := NewController(newTestSession(1, 10, 11, 12), submitter)
	c.Start()

	if err := c.Select("A"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	c.Next()
	if err := c.Select("C"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	// A one minute test: tick past zero and then some.
	for i := 0; i < 65; i++ {
		c.Tick()
	}

	if submitter.calls != 1 {
		t.Fatalf("submitter called %d times, want exactly 1", submitter.calls)
	}
	if c.State() != StateFinished {
		t.Errorf("state = %q, want finished", c.State())
	}
	if submitter.testID != 3 || submitter.attemptID != 7 {
		t.Errorf("submitted for (test=%d, attempt=%d), want (3, 7)", submitter.testID, submitter.attemptID)
	}
	if len(submitter.answers) != 2 {
		t.Fatalf("submitted %d answers, want the 2 selected", len(submitter.answers))
	}
	got := map[uint]string{}
	for _, a := range submitter.answers {
		got[a.QuestionID] = a.SelectedOption
	}
	if got[10] != "A" || got[11] != "C" {
		t.Errorf("submitted answers = %v, want question 10 -> A, 11 -> C", got)
	}
}

func TestManualSubmitBlocksAutoSubmit(t *testing.T) {
	submitter := &fakeSubmitter{}
	c := NewController(newTestSession(1, 10), submitter)
	c.Start()

	c.Submit()
	for i := 0; i < 120; i++ {
		c.Tick()
	}

	if submitter.calls != 1 {
		t.Errorf("submitter called %d times, want 1", submitter.calls)
	}
}

func TestClockStoppedWhileLoading(t *testing.T) {
	submitter := &fakeSubmitter{}
	c := NewController(newTestSession(1, 10), submitter)

	if c.State() != StateLoading {
		t.Fatalf("state = %q, want loading", c.State())
	}
	for i := 0; i < 120; i++ {
		c.Tick()
	}
	if c.Remaining() != 60 {
		t.Errorf("Remaining = %d, want 60 untouched before Start", c.Remaining())
	}
	if err := c.Select("A"); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("Select while loading: err = %v, want ErrNotInProgress", err)
	}
	if submitter.calls != 0 {
		t.Errorf("submitter called %d times before Start, want 0", submitter.calls)
	}

	c.Start()
	if c.State() != StateInProgress {
		t.Errorf("state after Start = %q, want in_progress", c.State())
	}
	c.Start() // second Start is a no-op
	if c.State() != StateInProgress {
		t.Errorf("state after repeated Start = %q, want in_progress", c.State())
	}
}

func TestSelectRejectsInvalidOption(t *testing.T) {
	c := NewController(newTestSession(5, 10), &fakeSubmitter{})
	c.Start()

	if err := c.Select("E"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Select(E): err = %v, want ErrInvalidOption", err)
	}
	if err := c.Select(""); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Select empty: err = %v, want ErrInvalidOption", err)
	}
	if c.Answered() != 0 {
		t.Errorf("Answered = %d after rejected selections, want 0", c.Answered())
	}
}

func TestSelectOverwritesEarlierChoice(t *testing.T) {
	c := NewController(newTestSession(5, 10), &fakeSubmitter{})
	c.Start()

	if err := c.Select("A"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := c.Select("D"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if c.Answered() != 1 {
		t.Errorf("Answered = %d, want 1", c.Answered())
	}
}

func TestSelectRejectedAfterSubmit(t *testing.T) {
	c := NewController(newTestSession(5, 10), &fakeSubmitter{})
	c.Start()
	c.Submit()

	if err := c.Select("A"); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("Select after submit: err = %v, want ErrNotInProgress", err)
	}
}

func TestNavigationClampsAtBounds(t *testing.T) {
	c := NewController(newTestSession(5, 10, 11), &fakeSubmitter{})

	c.Previous()
	q, err := c.CurrentQuestion()
	if err != nil {
		t.Fatalf("CurrentQuestion: %v", err)
	}
	if q.ID != 10 {
		t.Errorf("after Previous at start, question = %d, want 10", q.ID)
	}

	c.Next()
	c.Next()
	c.Next()
	q, _ = c.CurrentQuestion()
	if q.ID != 11 {
		t.Errorf("after Next past end, question = %d, want 11", q.ID)
	}
}

func TestSubmitErrorSurfaced(t *testing.T) {
	wantErr := errors.New("deadline exceeded")
	submitter := &fakeSubmitter{err: wantErr}
	c := NewController(newTestSession(1, 10), submitter)
	c.Start()

	c.Submit()

	if c.State() != StateFinished {
		t.Errorf("state = %q, want finished", c.State())
	}
	if !errors.Is(c.Err(), wantErr) {
		t.Errorf("Err = %v, want %v", c.Err(), wantErr)
	}
}

func TestTickCountsDown(t *testing.T) {
	c := NewController(newTestSession(2, 10), &fakeSubmitter{})
	c.Start()

	if c.Remaining() != 120 {
		t.Fatalf("Remaining = %d, want 120", c.Remaining())
	}
	c.Tick()
	c.Tick()
	if c.Remaining() != 118 {
		t.Errorf("Remaining = %d, want 118", c.Remaining())
	}
}
