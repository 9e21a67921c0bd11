package contract

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrEmptyTaskID = errors.New("task id is empty")
	ErrModelInvoke = errors.New("model invoke failed")
)
