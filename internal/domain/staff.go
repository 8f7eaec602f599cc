package domain

import "time"

// Staff is a bookable resource: a salon employee that appointments are
// assigned to and conflicts are checked against. Only staff flagged
// AvailableForBooking participate in slot computation and assignment.
// The roster is owned by the company admin; this service never mutates it.
type Staff struct {
	ID                  int64
	CompanyID           int64
	Name                string
	AvailableForBooking bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
