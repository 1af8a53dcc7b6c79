package advance

import "errors"

var (
	ErrAdvanceNotFound = errors.New("advance not found")
	ErrNotPending      = errors.New("advance has already been decided")
	ErrAlreadyDeducted = errors.New("advance has already been deducted")
)
