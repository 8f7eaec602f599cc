package check_availability

import (
	"context"
	"time"

	"github.com/salonhub/SLN-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByCompanyWithFilter(ctx context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeeklyHoursForDay(ctx context.Context, companyID int64, weekday time.Weekday) (*domain.WeeklyHours, error)
	GetOverride(ctx context.Context, companyID int64, date time.Time) (*domain.DateOverride, error)
	GetConfig(ctx context.Context, companyID int64) (*domain.CompanyScheduleConfig, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListBookable(ctx context.Context, companyID int64) ([]*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
