// Package scheduling implements the appointment slot computation core:
// resolving the effective opening window for a date, generating feasible
// slot start times against staff busy intervals, and assigning a free
// staff member to a new booking.
//
// The package is pure: it performs no I/O and operates only on values
// fetched by the caller. Closed days, too-short windows and empty rosters
// are normal business states and produce empty results, never errors.
package scheduling

import (
	"github.com/salonhub/SLN-BookingService/internal/domain"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// Window is the effective open interval of a company on one date,
// optionally with a break that blocks the whole company.
type Window struct {
	OpenFrom  types.TimeString
	OpenTo    types.TimeString
	BreakFrom *types.TimeString
	BreakTo   *types.TimeString
}

// HasBreak returns true if a break window is present
func (w *Window) HasBreak() bool {
	return w.BreakFrom != nil && w.BreakTo != nil
}

// ResolveWindow determines the effective opening window for a date, given
// the weekly schedule row for the date's weekday and the override row for
// the date (either or both may be nil when no row exists).
//
// An override row takes absolute precedence: when present, the weekly
// schedule is only used to fill boundaries the override leaves unset.
// Each field falls back individually — an override that sets only OpenFrom
// keeps OpenTo (and the break) from the weekly schedule. An override with
// neither OpenFrom nor OpenTo means closed all day.
//
// A nil result means the company is closed on that date.
func ResolveWindow(weekly *domain.WeeklyHours, override *domain.DateOverride) *Window {
	if override == nil {
		if weekly == nil {
			return nil
		}
		return validated(&Window{
			OpenFrom:  weekly.OpenFrom,
			OpenTo:    weekly.OpenTo,
			BreakFrom: weekly.BreakFrom,
			BreakTo:   weekly.BreakTo,
		})
	}

	if override.IsClosedAllDay() {
		return nil
	}

	w := &Window{}

	if override.OpenFrom != nil {
		w.OpenFrom = *override.OpenFrom
	} else if weekly != nil {
		w.OpenFrom = weekly.OpenFrom
	}

	if override.OpenTo != nil {
		w.OpenTo = *override.OpenTo
	} else if weekly != nil {
		w.OpenTo = weekly.OpenTo
	}

	// A half-set override with no weekly row to fall back on means the
	// window cannot be resolved; treat the date as closed.
	if w.OpenFrom.IsZero() || w.OpenTo.IsZero() {
		return nil
	}

	if override.BreakFrom != nil && override.BreakTo != nil {
		w.BreakFrom = override.BreakFrom
		w.BreakTo = override.BreakTo
	} else if weekly != nil && weekly.HasBreak() {
		w.BreakFrom = weekly.BreakFrom
		w.BreakTo = weekly.BreakTo
	}

	return validated(w)
}

// validated rejects windows that cannot hold any appointment
func validated(w *Window) *Window {
	if !w.OpenFrom.IsBefore(w.OpenTo) {
		return nil
	}
	return w
}
