package service

import (
	"math"

	"github.com/pharmasuccess/examportal/internal/model"
)

// PassThreshold is the percentage at and above which an attempt passes.
const PassThreshold = 50.0

// AnswerKeyEntry is the authoritative record for one question: the correct
// option and the marks it awards. Never sent to clients.
type AnswerKeyEntry struct {
	CorrectOption string
	Marks         int
}

// SubmittedAnswer is one (question, selected option) pair from a client.
type SubmittedAnswer struct {
	QuestionID     uint
	SelectedOption string
}

// GradeResult is the output of scoring one submission.
type GradeResult struct {
	// Correctness holds one entry per recognized submitted question.
	Correctness   map[uint]bool
	MarksObtained int
	Percentage    float64
	Status        string // model.ResultStatusPass or model.ResultStatusFail
}

// GradingService scores submissions against an answer key. Pure logic, no
// storage access.
type GradingService interface {
	Score(submitted []SubmittedAnswer, key map[uint]AnswerKeyEntry, testTotalMarks int) GradeResult
}

type gradingService struct{}

func NewGradingService() GradingService {
	return &gradingService{}
}

// Score compares each recognized answer to the key and aggregates marks.
// Unknown question ids are ignored, tolerating malformed client payloads.
// When the same question appears more than once, the last pair wins. The
// percentage is computed against the test's declared total marks (not the
// sum of question marks) and rounded to two decimals, matching what gets
// persisted.
func (g *gradingService) Score(submitted []SubmittedAnswer, key map[uint]AnswerKeyEntry, testTotalMarks int) GradeResult {
	// Last write wins for duplicate question ids.
	selected := make(map[uint]string, len(submitted))
	for _, ans := range submitted {
		if _, known := key[ans.QuestionID]; !known {
			continue
		}
		selected[ans.QuestionID] = ans.SelectedOption
	}

	correctness := make(map[uint]bool, len(selected))
	obtained := 0
	for questionID, option := range selected {
		entry := key[questionID]
		correct := option == entry.CorrectOption
		correctness[questionID] = correct
		if correct {
			obtained += entry.Marks
		}
	}

	percentage := 0.0
	if testTotalMarks > 0 {
		percentage = float64(obtained) / float64(testTotalMarks) * 100
	}

	// Pass/fail is decided on the exact quotient; rounding happens only for
	// the persisted two-decimal value.
	status := model.ResultStatusFail
	if percentage >= PassThreshold {
		status = model.ResultStatusPass
	}

	return GradeResult{
		Correctness:   correctness,
		MarksObtained: obtained,
		Percentage:    math.Round(percentage*100) / 100,
		Status:        status,
	}
}
