package attendance

// ActionStateKind is the next action the employee's client should offer for a
// day's record.
type ActionStateKind string

const (
	StateCheckIn       ActionStateKind = "check-in"
	StateCheckOut      ActionStateKind = "check-out"
	StateOvertimeStart ActionStateKind = "overtime-start"
	StateOvertimeEnd   ActionStateKind = "overtime-end"
	StateComplete      ActionStateKind = "complete"
)

// ActionState derives the day's action surface purely from the four timestamp
// fields and the rejection marker. A nil record means no row exists yet for
// the day.
//
// A rejected record (rejection note present, decision stamped, overtime not
// approved) resets to check-in so the employee can restart the day's cycle.
func ActionState(rec *Record) ActionStateKind {
	if rec == nil {
		return StateCheckIn
	}

	if IsRejected(rec) {
		return StateCheckIn
	}

	switch {
	case rec.CheckIn == nil && rec.CheckOut == nil:
		return StateCheckIn
	case rec.CheckIn != nil && rec.CheckOut == nil:
		return StateCheckOut
	case rec.OvertimeStart == nil:
		return StateOvertimeStart
	case rec.OvertimeEnd == nil:
		return StateOvertimeEnd
	default:
		return StateComplete
	}
}

// IsRejected reports whether a supervisor rejected the record's overtime and
// the employee is allowed to restart the day.
func IsRejected(rec *Record) bool {
	return rec.RejectionNote != nil && *rec.RejectionNote != "" &&
		rec.ApprovedAt != nil && !rec.IsOvertimeApproved
}
