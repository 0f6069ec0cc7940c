package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ResultStatusPass = "pass"
	ResultStatusFail = "fail"
)

// Result is the immutable outcome of a graded attempt. The unique index on
// AttemptID makes a concurrent double submission fail closed at the store.
type Result struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	AttemptID     uint           `json:"attempt_id" gorm:"not null;uniqueIndex"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	Test          Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	MarksObtained int            `json:"marks_obtained" gorm:"not null"`
	TotalMarks    int            `json:"total_marks" gorm:"not null"` // snapshot at grading time
	Percentage    float64        `json:"percentage" gorm:"type:decimal(5,2);not null"`
	Status        string         `json:"status" gorm:"not null"` // "pass" or "fail"
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
