package scheduling

import (
	"errors"

	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// ErrNoStaffAvailable is returned when no staff member is free for the
// requested interval. It is an expected, handled outcome: the caller
// offers the user a different time.
var ErrNoStaffAvailable = errors.New("scheduling: no staff available for the requested interval")

// Assign selects the staff member for a new booking on [from, to).
//
// Staff are tried in the caller-supplied order and the first one with no
// conflicting interval wins. The order is arbitrary but stable (roster
// fetch order), which makes assignment deterministic for a given snapshot.
//
// Assign only decides; it does not write. The check-then-act race between
// reading the busy index and inserting the booking is closed by the
// storage-level exclusion constraint and the serializable transaction
// wrapping the caller.
func Assign(staffIDs []int64, busy BusyIndex, from, to types.TimeString) (int64, error) {
	candidate := Interval{From: from, To: to}

	for _, id := range staffIDs {
		if busy.IsFree(id, candidate) {
			return id, nil
		}
	}

	return 0, ErrNoStaffAvailable
}
