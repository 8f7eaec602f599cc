package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SLN-BookingService/internal/domain"
)

func TestAssign_FirstFreeStaffInOrder(t *testing.T) {
	busy := BusyIndex{}

	staffID, err := Assign([]int64{7, 3}, busy, ts("14:00"), ts("14:30"))

	require.NoError(t, err)
	assert.Equal(t, int64(7), staffID)
}

func TestAssign_Deterministic(t *testing.T) {
	busy := BusyIndex{7: {{From: ts("14:00"), To: ts("15:00")}}}
	staff := []int64{7, 3, 5}

	for i := 0; i < 10; i++ {
		staffID, err := Assign(staff, busy, ts("14:00"), ts("14:30"))
		require.NoError(t, err)
		assert.Equal(t, int64(3), staffID)
	}
}

func TestAssign_SkipsConflictingStaff(t *testing.T) {
	busy := BusyIndex{
		1: {{From: ts("10:00"), To: ts("11:00")}},
		2: {{From: ts("10:30"), To: ts("11:30")}},
	}

	staffID, err := Assign([]int64{1, 2, 3}, busy, ts("10:45"), ts("11:15"))

	require.NoError(t, err)
	assert.Equal(t, int64(3), staffID)
}

func TestAssign_TouchingIntervalIsNotAConflict(t *testing.T) {
	busy := BusyIndex{1: {{From: ts("09:00"), To: ts("10:00")}}}

	staffID, err := Assign([]int64{1}, busy, ts("10:00"), ts("10:30"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), staffID)
}

func TestAssign_NoStaffAvailable(t *testing.T) {
	busy := BusyIndex{1: {{From: ts("10:00"), To: ts("11:00")}}}

	_, err := Assign([]int64{1}, busy, ts("10:15"), ts("10:45"))

	assert.ErrorIs(t, err, ErrNoStaffAvailable)
}

func TestAssign_EmptyRoster(t *testing.T) {
	_, err := Assign(nil, BusyIndex{}, ts("10:00"), ts("10:30"))

	assert.ErrorIs(t, err, ErrNoStaffAvailable)
}

func TestNewBusyIndex_SkipsInactiveAndUnassigned(t *testing.T) {
	staffID := int64(1)

	bookings := []*domain.Booking{
		{StaffID: &staffID, TimeFrom: ts("10:00"), TimeTo: ts("11:00"), Status: domain.StatusConfirmed},
		{StaffID: &staffID, TimeFrom: ts("12:00"), TimeTo: ts("13:00"), Status: domain.StatusCancelledByUser},
		{StaffID: nil, TimeFrom: ts("14:00"), TimeTo: ts("15:00"), Status: domain.StatusConfirmed},
	}

	busy := NewBusyIndex(bookings)

	require.Len(t, busy[staffID], 1)
	assert.Equal(t, ts("10:00"), busy[staffID][0].From)
}
