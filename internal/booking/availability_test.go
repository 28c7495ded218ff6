package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical windows", "2026-03-01", "2026-03-05", "2026-03-01", "2026-03-05", true},
		{"partial overlap", "2026-03-01", "2026-03-05", "2026-03-04", "2026-03-08", true},
		{"contained window", "2026-03-01", "2026-03-10", "2026-03-03", "2026-03-05", true},
		{"back to back, a before b", "2026-03-01", "2026-03-05", "2026-03-05", "2026-03-08", false},
		{"back to back, b before a", "2026-03-05", "2026-03-08", "2026-03-01", "2026-03-05", false},
		{"fully disjoint", "2026-03-01", "2026-03-03", "2026-03-10", "2026-03-12", false},
		{"single night inside", "2026-03-03", "2026-03-04", "2026-03-01", "2026-03-05", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			assert.Equal(t, tt.want, got)

			// Overlap is symmetric
			swapped := Overlaps(day(tt.bStart), day(tt.bEnd), day(tt.aStart), day(tt.aEnd))
			assert.Equal(t, got, swapped)
		})
	}
}

func TestOverlapsIgnoresTimeOfDay(t *testing.T) {
	aStart := day("2026-03-01").Add(23 * time.Hour)
	aEnd := day("2026-03-05").Add(1 * time.Minute)
	assert.False(t, Overlaps(aStart, aEnd, day("2026-03-05"), day("2026-03-08")))
	assert.True(t, Overlaps(aStart, aEnd, day("2026-03-04"), day("2026-03-08")))
}

func TestIsBlocking(t *testing.T) {
	assert.True(t, IsBlocking(StatusPending))
	assert.True(t, IsBlocking(StatusConfirmed))
	assert.True(t, IsBlocking(StatusCheckedIn))

	assert.False(t, IsBlocking(StatusCheckedOut))
	assert.False(t, IsBlocking(StatusCancelled))
	assert.False(t, IsBlocking(StatusRejected))
}

func TestConflictsWithAny(t *testing.T) {
	existing := []Booking{
		{CheckIn: day("2026-03-01"), CheckOut: day("2026-03-05"), Status: StatusConfirmed},
		{CheckIn: day("2026-03-10"), CheckOut: day("2026-03-12"), Status: StatusCancelled},
	}

	// Collides with the confirmed stay
	assert.True(t, ConflictsWithAny(day("2026-03-04"), day("2026-03-06"), existing))

	// Cancelled bookings release their window
	assert.False(t, ConflictsWithAny(day("2026-03-10"), day("2026-03-12"), existing))

	// Checkout day can be someone else's check-in day
	assert.False(t, ConflictsWithAny(day("2026-03-05"), day("2026-03-08"), existing))
}
