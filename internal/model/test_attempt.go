package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttemptStatusStarted   = "started"
	AttemptStatusCompleted = "completed"
)

// TestAttempt has one row per student per test; the composite unique index
// makes a concurrent double open fail closed at the store.
type TestAttempt struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_user_test"`
	TestID    uint           `json:"test_id" gorm:"not null;uniqueIndex:idx_attempt_user_test"`
	Test      Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Status    string         `json:"status" gorm:"not null;default:'started'"`
	StartTime time.Time      `json:"start_time" gorm:"autoCreateTime"`
	EndTime   *time.Time     `json:"end_time,omitempty"`
	Answers   []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
