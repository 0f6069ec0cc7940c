package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	UserTypeStudent = "student"
	UserTypeAdmin   = "admin"

	UserStatusPending  = "pending"
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusRejected = "rejected"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	FullName     string         `json:"full_name" gorm:"not null"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Phone        *string        `json:"phone,omitempty"`
	UserType     string         `json:"user_type" gorm:"not null;default:'student'"`
	Status       string         `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
