package applications

import "errors"

var (
	ErrNotFound     = errors.New("application not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotPending   = errors.New("application is not pending")
)
