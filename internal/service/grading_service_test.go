package service

import (
	"testing"

	"github.com/pharmasuccess/examportal/internal/model"
)

func fourMarkKey(ids ...uint) map[uint]AnswerKeyEntry {
	key := make(map[uint]AnswerKeyEntry, len(ids))
	for _, id := range ids {
		key[id] = AnswerKeyEntry{CorrectOption: "A", Marks: 4}
	}
	return key
}

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		submitted  []SubmittedAnswer
		key        map[uint]AnswerKeyEntry
		totalMarks int
		wantMarks  int
		wantPct    float64
		wantStatus string
	}{
		{
			name: "all correct",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
				{QuestionID: 2, SelectedOption: "A"},
			},
			key:        fourMarkKey(1, 2),
			totalMarks: 8,
			wantMarks:  8,
			wantPct:    100,
			wantStatus: model.ResultStatusPass,
		},
		{
			name: "half correct is a pass",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
				{QuestionID: 2, SelectedOption: "B"},
			},
			key:        fourMarkKey(1, 2),
			totalMarks: 8,
			wantMarks:  4,
			wantPct:    50,
			wantStatus: model.ResultStatusPass,
		},
		{
			name: "just under half fails",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
			},
			key: map[uint]AnswerKeyEntry{
				1: {CorrectOption: "A", Marks: 49},
			},
			totalMarks: 100,
			wantMarks:  49,
			wantPct:    49,
			wantStatus: model.ResultStatusFail,
		},
		{
			name: "unknown question ids are skipped",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
				{QuestionID: 999, SelectedOption: "A"},
			},
			key:        fourMarkKey(1),
			totalMarks: 4,
			wantMarks:  4,
			wantPct:    100,
			wantStatus: model.ResultStatusPass,
		},
		{
			name: "duplicate answers keep the last choice",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
				{QuestionID: 1, SelectedOption: "B"},
			},
			key:        fourMarkKey(1),
			totalMarks: 4,
			wantMarks:  0,
			wantPct:    0,
			wantStatus: model.ResultStatusFail,
		},
		{
			name: "duplicate answers can correct an earlier choice",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "B"},
				{QuestionID: 1, SelectedOption: "A"},
			},
			key:        fourMarkKey(1),
			totalMarks: 4,
			wantMarks:  4,
			wantPct:    100,
			wantStatus: model.ResultStatusPass,
		},
		{
			name: "three of five correct passes",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
				{QuestionID: 2, SelectedOption: "A"},
				{QuestionID: 3, SelectedOption: "A"},
				{QuestionID: 4, SelectedOption: "B"},
				{QuestionID: 5, SelectedOption: "C"},
			},
			key:        fourMarkKey(1, 2, 3, 4, 5),
			totalMarks: 20,
			wantMarks:  12,
			wantPct:    60,
			wantStatus: model.ResultStatusPass,
		},
		{
			name: "two of five correct fails",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
				{QuestionID: 2, SelectedOption: "A"},
				{QuestionID: 3, SelectedOption: "D"},
				{QuestionID: 4, SelectedOption: "B"},
				{QuestionID: 5, SelectedOption: "C"},
			},
			key:        fourMarkKey(1, 2, 3, 4, 5),
			totalMarks: 20,
			wantMarks:  8,
			wantPct:    40,
			wantStatus: model.ResultStatusFail,
		},
		{
			name:       "empty submission fails with zero marks",
			submitted:  nil,
			key:        fourMarkKey(1, 2),
			totalMarks: 8,
			wantMarks:  0,
			wantPct:    0,
			wantStatus: model.ResultStatusFail,
		},
		{
			name: "percentage uses declared total not question sum",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
			},
			key:        fourMarkKey(1),
			totalMarks: 16,
			wantMarks:  4,
			wantPct:    25,
			wantStatus: model.ResultStatusFail,
		},
		{
			name: "zero total marks yields zero percent",
			submitted: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: "A"},
			},
			key:        fourMarkKey(1),
			totalMarks: 0,
			wantMarks:  4,
			wantPct:    0,
			wantStatus: model.ResultStatusFail,
		},
	}

	g := NewGradingService()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Score(tc.submitted, tc.key, tc.totalMarks)
			if got.MarksObtained != tc.wantMarks {
				t.Errorf("MarksObtained = %d, want %d", got.MarksObtained, tc.wantMarks)
			}
			if got.Percentage != tc.wantPct {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tc.wantPct)
			}
			if got.Status != tc.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tc.wantStatus)
			}
		})
	}
}

// A score that rounds up to 50.00 for display must still fail: pass or fail
// is decided on the exact quotient, not the rounded value.
func TestScore_RoundingDoesNotFlipStatus(t *testing.T) {
	key := map[uint]AnswerKeyEntry{
		1: {CorrectOption: "A", Marks: 19999},
	}
	got := NewGradingService().Score(
		[]SubmittedAnswer{{QuestionID: 1, SelectedOption: "A"}},
		key,
		40000,
	)

	// 19999/40000 = 49.9975%, stored as 50.00 after rounding.
	if got.Percentage != 50.0 {
		t.Errorf("Percentage = %v, want 50.0", got.Percentage)
	}
	if got.Status != model.ResultStatusFail {
		t.Errorf("Status = %q, want %q", got.Status, model.ResultStatusFail)
	}
}

func TestScore_Deterministic(t *testing.T) {
	g := NewGradingService()
	submitted := []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 2, SelectedOption: "B"},
	}
	key := fourMarkKey(1, 2)

	first := g.Score(submitted, key, 8)
	second := g.Score(submitted, key, 8)
	if first.MarksObtained != second.MarksObtained ||
		first.Percentage != second.Percentage ||
		first.Status != second.Status {
		t.Errorf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestScore_CorrectnessPerQuestion(t *testing.T) {
	key := map[uint]AnswerKeyEntry{
		1: {CorrectOption: "A", Marks: 4},
		2: {CorrectOption: "C", Marks: 4},
	}
	got := NewGradingService().Score(
		[]SubmittedAnswer{
			{QuestionID: 1, SelectedOption: "A"},
			{QuestionID: 2, SelectedOption: "D"},
			{QuestionID: 3, SelectedOption: "A"},
		},
		key,
		8,
	)

	if len(got.Correctness) != 2 {
		t.Fatalf("Correctness has %d entries, want 2", len(got.Correctness))
	}
	if !got.Correctness[1] {
		t.Errorf("question 1 marked wrong, want correct")
	}
	if got.Correctness[2] {
		t.Errorf("question 2 marked correct, want wrong")
	}
	if _, present := got.Correctness[3]; present {
		t.Errorf("unknown question 3 present in Correctness")
	}
}
