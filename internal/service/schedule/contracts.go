package schedule

import (
	"context"
	"time"

	"github.com/salonhub/SLN-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeeklyHours(ctx context.Context, companyID int64) ([]*domain.WeeklyHours, error)
	ReplaceWeeklyHours(ctx context.Context, companyID int64, hours []*domain.WeeklyHours) error
	ListOverrides(ctx context.Context, companyID int64, from, to time.Time) ([]*domain.DateOverride, error)
	UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
	DeleteOverride(ctx context.Context, companyID int64, date time.Time) error
	GetConfig(ctx context.Context, companyID int64) (*domain.CompanyScheduleConfig, error)
	UpsertConfig(ctx context.Context, cfg *domain.CompanyScheduleConfig) (*domain.CompanyScheduleConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
