package booking

import "time"

// blockingStatuses are the booking states that hold a room's dates.
// Cancelled, rejected and checked-out bookings release their window.
var blockingStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCheckedIn: true,
}

// IsBlocking reports whether a booking in the given status holds its dates.
func IsBlocking(status string) bool {
	return blockingStatuses[status]
}

// TruncateToDay strips the time-of-day component. All availability math is
// date-only; wall-clock times on either interval never affect the outcome.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Overlaps reports whether two half-open stay intervals collide. The strict
// comparisons make back-to-back stays legal: a checkout on the same day as
// the next check-in is not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart, aEnd = TruncateToDay(aStart), TruncateToDay(aEnd)
	bStart, bEnd = TruncateToDay(bStart), TruncateToDay(bEnd)
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ConflictsWithAny reports whether the proposed stay collides with any
// blocking booking in the list.
func ConflictsWithAny(checkIn, checkOut time.Time, existing []Booking) bool {
	for _, b := range existing {
		if !IsBlocking(b.Status) {
			continue
		}
		if Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			return true
		}
	}
	return false
}
