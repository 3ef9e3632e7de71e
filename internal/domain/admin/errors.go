package admin

import "errors"

var (
	ErrNotFound           = errors.New("administrator not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("mail address is already registered")
)
