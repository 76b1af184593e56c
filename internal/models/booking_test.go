package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	}

	existing := &Booking{PickupTime: day(1), DropoffTime: day(5)}

	tests := []struct {
		name    string
		pickup  time.Time
		dropoff time.Time
		want    bool
	}{
		{"fully inside", day(2), day(4), true},
		{"fully covers", day(1), day(8), true},
		{"partial overlap at end", day(4), day(8), true},
		{"partial overlap at start", day(1), day(2), true},
		{"touching at dropoff is a conflict", day(5), day(9), true},
		{"touching at pickup is a conflict", day(1), day(1), true},
		{"strictly after", day(6), day(9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.pickup, tt.dropoff))
		})
	}

	// the symmetric case: existing ends the moment the request starts
	before := &Booking{PickupTime: day(6), DropoffTime: day(9)}
	assert.False(t, before.Overlaps(day(1), day(5)))
	assert.True(t, before.Overlaps(day(9), day(12)))
}

func TestBookingIsTerminal(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: BookingStatusCancelled}).IsTerminal())
	assert.False(t, (&Booking{Status: BookingStatusPending}).IsTerminal())
	assert.False(t, (&Booking{Status: BookingStatusActive}).IsTerminal())
}

func TestCanTransitionTo(t *testing.T) {
	b := &Booking{Status: BookingStatusConfirmed}
	assert.True(t, b.CanTransitionTo(BookingStatusActive))
	assert.True(t, b.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, b.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, b.CanTransitionTo(BookingStatusPending))
}

func TestUserFullNameAndStaff(t *testing.T) {
	u := &User{FirstName: "Grace", LastName: "Hopper", Role: UserRoleSupportAgent}
	assert.Equal(t, "Grace Hopper", u.FullName())
	assert.True(t, u.IsStaff())

	u.Role = UserRoleClient
	assert.False(t, u.IsStaff())
}
