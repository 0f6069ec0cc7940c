package model

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	TestTitle       string         `json:"test_title" gorm:"not null"`
	CourseID        uint           `json:"course_id" gorm:"not null;index"`
	Course          Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	TotalMarks      int            `json:"total_marks" gorm:"not null"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	TestType        string         `json:"test_type,omitempty"`
	AvailableFrom   *time.Time     `json:"available_from,omitempty"`
	AvailableUntil  *time.Time     `json:"available_until,omitempty"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
