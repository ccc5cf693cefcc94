package models

import "errors"

var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrDuplicateName   = errors.New("username already taken")
	ErrUnknownEmail    = errors.New("email not registered")
	ErrInvalidPassword = errors.New("password incorrect")
	ErrSamePassword    = errors.New("new password matches the current one")
	ErrInvalidCategory = errors.New("unknown category")
	ErrNotFound        = errors.New("not found")
)
