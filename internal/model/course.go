package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	CourseName     string         `json:"course_name" gorm:"not null"`
	Description    string         `json:"description,omitempty"`
	DurationMonths int            `json:"duration_months"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Enrollment links a student to a course. The composite unique index is what
// turns a duplicate enroll into a constraint violation instead of a second row.
type Enrollment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Course     Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`
}
