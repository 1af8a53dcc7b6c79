package attendance

import "errors"

// Attendance domain errors
var (
	// Day-cycle errors
	ErrAlreadyCheckedIn       = errors.New("already checked in today")
	ErrNotCheckedIn           = errors.New("not checked in yet")
	ErrAlreadyCheckedOut      = errors.New("already checked out today")
	ErrNotCheckedOut          = errors.New("check out before starting overtime")
	ErrOvertimeAlreadyStarted = errors.New("overtime already started")
	ErrOvertimeNotStarted     = errors.New("overtime has not been started")
	ErrOvertimeAlreadyEnded   = errors.New("overtime already ended")
	ErrCheckOutBeforeCheckIn  = errors.New("check-out cannot precede check-in")

	// Approval errors
	ErrAlreadyDecided     = errors.New("record has already been approved or rejected")
	ErrOvertimeIncomplete = errors.New("overtime must have both start and end before a decision")
	ErrNotPendingLate     = errors.New("no pending late reason on this record")
	ErrLateNotEligible    = errors.New("late reason can only be submitted for LATE or ABSENT days")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
