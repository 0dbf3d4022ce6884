package services

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrDuplicateUsername  = errors.New("username already exists. Try another one")
	ErrInvalidCredentials = errors.New("invalid credentials. Please try again")
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrEmptyPassword      = errors.New("enter a new password")
	ErrEmptyInput         = errors.New("enter your feelings to get advice")
	ErrFeatureLocked      = errors.New("this feature is locked. Please purchase it in the Shop to unlock it")
)
