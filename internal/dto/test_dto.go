package dto

import "time"

// QuestionPublicDTO is what a student taking a test sees. The correct option
// and explanation never leave the server through this type.
type QuestionPublicDTO struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	Marks        int    `json:"marks"`
}

type TestMetadataDTO struct {
	ID              uint       `json:"id"`
	TestTitle       string     `json:"test_title"`
	CourseID        uint       `json:"course_id"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalMarks      int        `json:"total_marks"`
	TestType        string     `json:"test_type,omitempty"`
	AvailableFrom   *time.Time `json:"available_from,omitempty"`
	AvailableUntil  *time.Time `json:"available_until,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TestSessionDTO is the get_test payload: metadata, key-stripped questions
// and the freshly opened attempt.
type TestSessionDTO struct {
	Test      TestMetadataDTO     `json:"test"`
	Questions []QuestionPublicDTO `json:"questions"`
	AttemptID uint                `json:"attempt_id"`
}

// SubmittedAnswerDTO is one (question, selected option) pair of a submission.
type SubmittedAnswerDTO struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedOption string `json:"selected_option" binding:"required,oneof=A B C D"`
}

type SubmitTestDTO struct {
	AttemptID uint                 `json:"attempt_id" binding:"required"`
	Answers   []SubmittedAnswerDTO `json:"answers" binding:"dive"`
}

type ResultDTO struct {
	ID            uint      `json:"id"`
	TestID        uint      `json:"test_id"`
	TestTitle     string    `json:"test_title"`
	MarksObtained int       `json:"marks_obtained"`
	TotalMarks    int       `json:"total_marks"`
	Percentage    float64   `json:"percentage"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
