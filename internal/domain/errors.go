package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("account disabled")
	ErrInvalidToken       = errors.New("invalid token")

	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrProfileIncomplete    = errors.New("complete your profile before matchmaking")

	ErrSlotNotFound = errors.New("slot not found")

	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchAlreadyExists = errors.New("match already exists")
	ErrInvalidStatus      = errors.New("invalid match status")
	ErrInvalidTransition  = errors.New("match already answered")
)
