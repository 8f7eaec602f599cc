package domain

import (
	"time"

	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
	StatusNoShow             BookingStatus = "no_show"
)

// Booking represents a committed appointment interval in the system.
// The occupied time range is the half-open interval [TimeFrom, TimeTo):
// a booking ending at 10:00 does not conflict with one starting at 10:00.
type Booking struct {
	ID        int64
	UserID    int64
	CompanyID int64

	// StaffID is the staff member assigned to the booking.
	// Nil means unassigned; unassigned bookings block nobody's calendar.
	StaffID *int64

	BookingDate time.Time
	TimeFrom    types.TimeString
	TimeTo      types.TimeString
	Status      BookingStatus

	// Denormalized data for history
	ServiceName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time range
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByCompany &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByCompany
}

// DurationMinutes returns the booking length in minutes
func (b *Booking) DurationMinutes() (int, error) {
	return b.TimeFrom.MinutesBetween(b.TimeTo)
}

// CompanyBookingsFilter фильтр для получения бронирований компании
type CompanyBookingsFilter struct {
	CompanyID       int64          // Обязательный параметр
	StaffID         *int64         // Фильтр по мастеру (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
