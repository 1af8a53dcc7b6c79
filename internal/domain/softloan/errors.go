package softloan

import "errors"

var (
	ErrLoanNotFound = errors.New("soft loan not found")
	ErrNotPending   = errors.New("soft loan has already been activated or completed")
	ErrNotActive    = errors.New("soft loan is not active")
)
