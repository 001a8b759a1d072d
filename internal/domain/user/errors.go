package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrInvalidRole            = errors.New("role must be employee or manager")
	ErrManagerAccessRequired  = errors.New("manager access required")
	ErrEmployeeAccessRequired = errors.New("employee access required")
)
