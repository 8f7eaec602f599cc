package domain

import "time"

// CompanyScheduleConfig holds per-company scheduling parameters.
// When no row exists for a company, the Default* constants apply.
type CompanyScheduleConfig struct {
	ID        int64
	CompanyID int64

	// StepMinutes is the candidate-slot grid step. Slot starts are generated
	// on this grid from the opening time, independent of service duration:
	// a 37-minute service still gets candidates every StepMinutes.
	StepMinutes int

	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *CompanyScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
