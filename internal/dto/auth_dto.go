package dto

// RegisterDTO creates a student account in pending state.
type RegisterDTO struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Phone    *string `json:"phone"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required,oneof=student admin"`
}

type LoginResponseDTO struct {
	User  UserResponseDTO `json:"user"`
	Token string          `json:"token"`
}

type UserResponseDTO struct {
	ID       uint    `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	UserType string  `json:"user_type"`
	Status   string  `json:"status"`
}

type ChangePasswordDTO struct {
	Password string `json:"password" binding:"required,min=6"`
}
