package scheduling

import "github.com/salonhub/SLN-BookingService/pkg/types"

// GenerateSlots walks the opening window on a fixed grid and returns every
// feasible appointment start time, ascending.
//
// Candidates start at window.OpenFrom and advance by stepMinutes up to and
// including openTo - durationMinutes. The grid step is independent of the
// service duration: a 37-minute service still gets candidates every
// stepMinutes. A candidate is feasible when at least one staff member has
// no committed interval overlapping [candidate, candidate+duration).
//
// The break window, when present, is applied as a blackout on every staff
// member before testing. A nil window, an empty roster or a duration longer
// than the window all yield an empty list.
func GenerateSlots(window *Window, busy BusyIndex, staffIDs []int64, durationMinutes, stepMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if window == nil || durationMinutes <= 0 || stepMinutes <= 0 || len(staffIDs) == 0 {
		return slots
	}

	lastStart, err := window.OpenTo.AddMinutes(-durationMinutes)
	if err != nil || lastStart.IsBefore(window.OpenFrom) {
		// The window is too short for the requested duration at all.
		return slots
	}

	if window.HasBreak() {
		busy = busy.WithBlackout(staffIDs, Interval{From: *window.BreakFrom, To: *window.BreakTo})
	}

	for offset := 0; ; offset += stepMinutes {
		candidate, err := window.OpenFrom.AddMinutes(offset)
		if err != nil || candidate.IsAfter(lastStart) {
			break
		}

		candidateEnd, err := candidate.AddMinutes(durationMinutes)
		if err != nil {
			break
		}

		if countFree(busy, staffIDs, Interval{From: candidate, To: candidateEnd}) > 0 {
			slots = append(slots, candidate)
		}
	}

	return slots
}

// CountFreeStaff returns how many of the listed staff members are free for
// the whole interval [from, to), with the window's break applied as a
// blackout. Used to annotate slot listings with free/total counts.
func CountFreeStaff(window *Window, busy BusyIndex, staffIDs []int64, from, to types.TimeString) int {
	if window != nil && window.HasBreak() {
		busy = busy.WithBlackout(staffIDs, Interval{From: *window.BreakFrom, To: *window.BreakTo})
	}
	return countFree(busy, staffIDs, Interval{From: from, To: to})
}

func countFree(busy BusyIndex, staffIDs []int64, candidate Interval) int {
	free := 0
	for _, id := range staffIDs {
		if busy.IsFree(id, candidate) {
			free++
		}
	}
	return free
}

// AnySlotWithin reports whether any slot s satisfies from <= s < to.
// A nil from means any slot qualifies. Used to collapse a slot list to a
// boolean when filtering multi-company search results.
func AnySlotWithin(slots []types.TimeString, from *types.TimeString, to types.TimeString) bool {
	if from == nil {
		return len(slots) > 0
	}

	for _, s := range slots {
		if !s.IsBefore(*from) && s.IsBefore(to) {
			return true
		}
	}

	return false
}
