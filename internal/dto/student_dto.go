package dto

import "time"

type StudentDashboardDTO struct {
	CompletedTests int64   `json:"completed_tests"`
	PendingTests   int64   `json:"pending_tests"`
	AvgScore       float64 `json:"avg_score"`
}

type CourseDTO struct {
	ID             uint   `json:"id"`
	CourseName     string `json:"course_name"`
	Description    string `json:"description,omitempty"`
	DurationMonths int    `json:"duration_months"`
}

type EnrollDTO struct {
	CourseID uint `json:"course_id" binding:"required"`
}

type AvailableTestDTO struct {
	ID              uint       `json:"id"`
	TestTitle       string     `json:"test_title"`
	CourseID        uint       `json:"course_id"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalMarks      int        `json:"total_marks"`
	TestType        string     `json:"test_type,omitempty"`
	AvailableUntil  *time.Time `json:"available_until,omitempty"`
}
