package scheduling

import (
	"github.com/salonhub/SLN-BookingService/internal/domain"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// Interval is a half-open time range [From, To) within one calendar date.
type Interval struct {
	From types.TimeString
	To   types.TimeString
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do not overlap: an interval ending at 10:00
// does not conflict with one starting at 10:00.
func (i Interval) Overlaps(other Interval) bool {
	return i.From.IsBefore(other.To) && other.From.IsBefore(i.To)
}

// BusyIndex maps a staff ID to that staff member's committed intervals
// on one date. Intervals of a single staff member never overlap each
// other; that invariant is maintained at booking-commit time.
type BusyIndex map[int64][]Interval

// NewBusyIndex builds a busy index from the day's bookings.
// Cancelled and no-show bookings do not occupy time, and unassigned
// bookings (no staff) impose no constraint on any staff member.
func NewBusyIndex(bookings []*domain.Booking) BusyIndex {
	busy := make(BusyIndex)

	for _, b := range bookings {
		if !b.IsActive() || b.StaffID == nil {
			continue
		}
		busy[*b.StaffID] = append(busy[*b.StaffID], Interval{From: b.TimeFrom, To: b.TimeTo})
	}

	return busy
}

// WithBlackout returns a copy of the index with the interval added to every
// listed staff member. Used to apply the company break window: the break is
// a company-wide blackout, not a per-staff booking.
func (b BusyIndex) WithBlackout(staffIDs []int64, blackout Interval) BusyIndex {
	out := make(BusyIndex, len(b))
	for id, intervals := range b {
		out[id] = intervals
	}

	for _, id := range staffIDs {
		out[id] = append(append([]Interval(nil), out[id]...), blackout)
	}

	return out
}

// IsFree reports whether the staff member has no interval overlapping the candidate
func (b BusyIndex) IsFree(staffID int64, candidate Interval) bool {
	for _, iv := range b[staffID] {
		if iv.Overlaps(candidate) {
			return false
		}
	}
	return true
}
