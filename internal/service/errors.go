package service

import "errors"

var (
	// ErrTestNotFound covers both a missing and an inactive test.
	ErrTestNotFound     = errors.New("test not found or not active")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCourseNotFound   = errors.New("course not found")

	// ErrInvalidState marks a transition attempted out of order, typically
	// submitting an attempt that is already completed.
	ErrInvalidState = errors.New("attempt is not in a submittable state")

	ErrAlreadyAttempted = errors.New("test has already been attempted")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this course")

	// ErrDeadlineExceeded rejects submissions arriving after the server-side
	// deadline derived from the attempt's start time and the test duration.
	ErrDeadlineExceeded = errors.New("submission deadline has passed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrEmailTaken         = errors.New("an account with this email already exists")

	ErrValidation = errors.New("validation failed")

	// ErrExplanationUnavailable is returned when no Gemini API key was
	// configured at startup.
	ErrExplanationUnavailable = errors.New("explanation generation is not configured")
)
