// Package session drives a single timed test-taking session: the countdown,
// the current-question pointer and the in-memory answer map. Nothing touches
// the network until submission, which fires exactly once, on explicit
// confirmation or when the countdown reaches zero.
package session

import (
	"errors"
	"sync"

	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/rs/zerolog/log"
)

type State string

const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateFinished   State = "finished"
)

var (
	ErrNotInProgress = errors.New("session is not in progress")
	ErrNoQuestion    = errors.New("session has no questions")
	ErrInvalidOption = errors.New("selected option is not one of A, B, C, D")
)

// Submitter sends the collected answers for an attempt. Implemented by the
// HTTP client in this package; faked in tests.
type Submitter interface {
	SubmitTest(testID, attemptID uint, answers []dto.SubmittedAnswerDTO) error
}

// Controller is the timed session state machine. All methods are safe for
// use from the tick source and a UI goroutine concurrently.
type Controller struct {
	mu sync.Mutex

	state     State
	testID    uint
	attemptID uint
	questions []dto.QuestionPublicDTO

	remaining int // seconds
	current   int // index into questions
	answers   map[uint]string

	submitter Submitter
	submitErr error
}

// NewController builds a session from a loaded test payload. It stays in
// loading, with the clock stopped, until Start is called.
func NewController(ts *dto.TestSessionDTO, submitter Submitter) *Controller {
	return &Controller{
		state:     StateLoading,
		testID:    ts.Test.ID,
		attemptID: ts.AttemptID,
		questions: ts.Questions,
		remaining: ts.Test.DurationMinutes * 60,
		answers:   make(map[uint]string),
		submitter: submitter,
	}
}

// Start enters in_progress with the full duration on the clock. Calling it
// again, or after submission, has no effect.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateLoading {
		c.state = StateInProgress
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// CurrentQuestion returns the question under the pointer.
func (c *Controller) CurrentQuestion() (dto.QuestionPublicDTO, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.questions) == 0 {
		return dto.QuestionPublicDTO{}, ErrNoQuestion
	}
	return c.questions[c.current], nil
}

// Next advances the question pointer, clamping at the last question.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current < len(c.questions)-1 {
		c.current++
	}
}

// Previous moves the question pointer back, clamping at zero.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current > 0 {
		c.current--
	}
}

// Select records the chosen option for the current question, replacing any
// earlier choice. Rejected once submission has begun.
func (c *Controller) Select(option string) error {
	if !model.ValidOption(option) {
		return ErrInvalidOption
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress {
		return ErrNotInProgress
	}
	if len(c.questions) == 0 {
		return ErrNoQuestion
	}
	c.answers[c.questions[c.current].ID] = option
	return nil
}

// Answered reports how many questions currently have a selected option.
func (c *Controller) Answered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.answers)
}

// Tick consumes one elapsed second. At zero the session submits
// automatically with whatever answers exist.
func (c *Controller) Tick() {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return
	}
	c.remaining--
	if c.remaining > 0 {
		c.mu.Unlock()
		return
	}
	c.remaining = 0
	c.mu.Unlock()

	log.Info().Uint("attemptID", c.attemptID).Msg("Time is up, auto-submitting")
	c.Submit()
}

// Submit sends the answer map once. Subsequent calls are no-ops: the state
// machine only leaves in_progress a single time.
func (c *Controller) Submit() {
	c.mu.Lock()
	if c.state != StateInProgress {
		c.mu.Unlock()
		return
	}
	c.state = StateSubmitting
	answers := make([]dto.SubmittedAnswerDTO, 0, len(c.answers))
	for questionID, option := range c.answers {
		answers = append(answers, dto.SubmittedAnswerDTO{QuestionID: questionID, SelectedOption: option})
	}
	testID, attemptID := c.testID, c.attemptID
	c.mu.Unlock()

	err := c.submitter.SubmitTest(testID, attemptID, answers)

	c.mu.Lock()
	c.submitErr = err
	c.state = StateFinished
	c.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Submission failed")
	}
}

// Err returns the submission error, if any, once the session is finished.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitErr
}
