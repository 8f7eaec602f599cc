package domain

import (
	"time"

	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// WeeklyHours is the recurring opening window of a company for one weekday.
// At most one row exists per (company, weekday).
// Invariant when the break is set: OpenFrom <= BreakFrom < BreakTo <= OpenTo.
type WeeklyHours struct {
	ID        int64
	CompanyID int64
	Weekday   time.Weekday
	OpenFrom  types.TimeString
	OpenTo    types.TimeString
	BreakFrom *types.TimeString
	BreakTo   *types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBreak returns true if a break window is configured
func (h *WeeklyHours) HasBreak() bool {
	return h.BreakFrom != nil && h.BreakTo != nil
}

// DateOverride replaces the weekly opening window for one calendar date.
// An existing override row takes absolute precedence over WeeklyHours:
// when a row exists for the date, the weekly schedule is never consulted
// for fields the override sets. A row with both OpenFrom and OpenTo nil
// means the company is closed all day.
//
// Override fields apply individually: an override that sets only OpenFrom
// keeps OpenTo from the weekly schedule for that weekday. This mirrors the
// behavior of the admin hours editor, which saves only the edited boundary.
type DateOverride struct {
	ID        int64
	CompanyID int64
	Date      time.Time
	OpenFrom  *types.TimeString
	OpenTo    *types.TimeString
	BreakFrom *types.TimeString
	BreakTo   *types.TimeString
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClosedAllDay returns true if the override marks the date as fully closed
func (o *DateOverride) IsClosedAllDay() bool {
	return o.OpenFrom == nil && o.OpenTo == nil
}
