package domain

import "github.com/salonhub/SLN-BookingService/pkg/types"

// AvailableSlot represents a feasible appointment start time: at least one
// staff member is free for the full requested duration starting there.
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	FreeStaff       int // Staff members free for the whole interval
	TotalStaff      int // Bookable staff members on the roster
}

// IsFullyAvailable returns true if every staff member is free for the slot
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.FreeStaff == s.TotalStaff
}

// OccupancyRate returns the share of busy staff as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalStaff == 0 {
		return 0
	}
	busy := s.TotalStaff - s.FreeStaff
	return float64(busy) / float64(s.TotalStaff) * 100
}
