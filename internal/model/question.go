package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// ValidOption reports whether s is one of the four answer options.
func ValidOption(s string) bool {
	switch s {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	OptionA       string         `json:"option_a" gorm:"not null"`
	OptionB       string         `json:"option_b" gorm:"not null"`
	OptionC       string         `json:"option_c" gorm:"not null"`
	OptionD       string         `json:"option_d" gorm:"not null"`
	CorrectOption string         `json:"correct_option" gorm:"not null"` // "A".."D"
	Explanation   *string        `json:"explanation,omitempty" gorm:"type:text"`
	Marks         int            `json:"marks" gorm:"not null"`
	Difficulty    string         `json:"difficulty" gorm:"default:'medium'"` // "easy", "medium", "hard"
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
