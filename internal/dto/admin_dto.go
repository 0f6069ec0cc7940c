package dto

import "time"

type AdminDashboardDTO struct {
	TotalStudents int64 `json:"total_students"`
	PendingUsers  int64 `json:"pending_users"`
	ActiveTests   int64 `json:"active_tests"`
	TotalAttempts int64 `json:"total_attempts"`
}

type UpdateUserStatusDTO struct {
	UserID uint   `json:"user_id" binding:"required"`
	Status string `json:"status" binding:"required,oneof=pending active inactive rejected"`
}

type TestCreateDTO struct {
	TestTitle       string     `json:"test_title" binding:"required"`
	CourseID        uint       `json:"course_id" binding:"required"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,gt=0"`
	TotalMarks      int        `json:"total_marks" binding:"required,gt=0"`
	TestType        string     `json:"test_type"`
	AvailableFrom   *time.Time `json:"available_from"`
	AvailableUntil  *time.Time `json:"available_until"`
}

// QuestionImportDTO is one row of a bulk import. Marks defaults to 4 when
// omitted, matching the import convention for mock papers.
type QuestionImportDTO struct {
	QuestionText  string `json:"question_text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectOption string `json:"correct_option" binding:"required,oneof=A B C D"`
	Marks         *int   `json:"marks" binding:"omitempty,gt=0"`
}

type BulkImportDTO struct {
	TestID    uint                `json:"test_id" binding:"required"`
	Questions []QuestionImportDTO `json:"questions" binding:"required,min=1,dive"`
}

type BulkImportResultDTO struct {
	Imported int `json:"imported"`
}

type AdminResultDTO struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	UserName      string    `json:"user_name"`
	TestID        uint      `json:"test_id"`
	TestTitle     string    `json:"test_title"`
	MarksObtained int       `json:"marks_obtained"`
	TotalMarks    int       `json:"total_marks"`
	Percentage    float64   `json:"percentage"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type ExplanationDTO struct {
	QuestionID  uint   `json:"question_id"`
	Explanation string `json:"explanation"`
}
