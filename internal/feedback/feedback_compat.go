package feedback

import "go-volunteer/internal/attendance"

// legacyCompleted accepts rows written before time_in and time_out were both
// mandatory on check-out. Such rows only carry a status, a time_out or a
// positive hour total.
//
// TODO: drop once the legacy attendance import is backfilled with time_in.
func legacyCompleted(r *attendance.Record) bool {
	switch r.Status {
	case attendance.StatusSubmitted, attendance.StatusOverridden, attendance.StatusPending:
		return true
	}
	return r.TimeOut != nil || r.TotalHours > 0
}

func isCompleted(r *attendance.Record) bool {
	return r.IsCompleted() || legacyCompleted(r)
}
