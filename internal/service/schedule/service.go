package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	scheduleRepo "github.com/salonhub/SLN-BookingService/internal/infra/storage/schedule"
	"github.com/salonhub/SLN-BookingService/internal/service/schedule/models"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// OverridesHorizonDays окно выдачи переопределений в GetSchedule
const OverridesHorizonDays = 90

// Service сервис для работы с расписанием компании
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает полное расписание компании: недельные часы,
// переопределения на ближайшие OverridesHorizonDays дней и конфигурацию сетки.
// Публичный метод - клиенты показывают часы работы на карточке компании.
func (s *Service) GetSchedule(ctx context.Context, companyID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for company=%d", companyID)

	weekly, err := s.scheduleRepo.GetWeeklyHours(ctx, companyID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	now := time.Now()
	overrides, err := s.scheduleRepo.ListOverrides(ctx, companyID, now, now.AddDate(0, 0, OverridesHorizonDays))
	if err != nil {
		s.logger.Error("GetSchedule: failed to list overrides for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to list overrides: %v", ErrInternal, err)
	}

	cfg, err := s.scheduleRepo.GetConfig(ctx, companyID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		s.logger.Error("GetSchedule: failed to get config for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to get config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = &domain.CompanyScheduleConfig{
			CompanyID:               companyID,
			StepMinutes:             domain.DefaultStepMinutes,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
		}
	}

	resp := &models.ScheduleResponse{
		CompanyID:   companyID,
		WeeklyHours: make([]models.WeeklyHoursItem, 0, len(weekly)),
		Overrides:   make([]models.OverrideItem, 0, len(overrides)),
		Config:      models.FromDomainConfig(cfg),
	}
	for _, h := range weekly {
		resp.WeeklyHours = append(resp.WeeklyHours, models.FromDomainWeeklyHours(h))
	}
	for _, o := range overrides {
		resp.Overrides = append(resp.Overrides, models.FromDomainOverride(o))
	}

	s.logger.Info("GetSchedule: company=%d has %d weekly rows, %d overrides",
		companyID, len(resp.WeeklyHours), len(resp.Overrides))
	return resp, nil
}

// UpdateSchedule применяет изменения расписания компании в одной транзакции.
// Каждая секция запроса опциональна; присутствующая применяется целиком.
// Доступно только на менеджерских маршрутах компании.
func (s *Service) UpdateSchedule(ctx context.Context, companyID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for company=%d", companyID)

	if companyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	// Валидация и конвертация до открытия транзакции
	weekly, err := s.convertWeeklyHours(companyID, req.WeeklyHours)
	if err != nil {
		s.logger.Warn("UpdateSchedule: weekly hours validation failed for company=%d: %v", companyID, err)
		return nil, err
	}

	overrides, err := s.convertOverrides(companyID, req.Overrides)
	if err != nil {
		s.logger.Warn("UpdateSchedule: overrides validation failed for company=%d: %v", companyID, err)
		return nil, err
	}

	deleteDates, err := parseDates(req.DeleteOverrideDates)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid delete dates for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: invalid date in deleteOverrideDates: %v", ErrInvalidInput, err)
	}

	var cfg *domain.CompanyScheduleConfig
	if req.Config != nil {
		if err := validateConfig(req.Config); err != nil {
			s.logger.Warn("UpdateSchedule: config validation failed for company=%d: %v", companyID, err)
			return nil, err
		}
		cfg = req.Config.ToDomainConfig(companyID)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.WeeklyHours != nil {
			if err := s.scheduleRepo.ReplaceWeeklyHours(txCtx, companyID, weekly); err != nil {
				return fmt.Errorf("%w: failed to replace weekly hours: %v", ErrInternal, err)
			}
		}

		for _, o := range overrides {
			if _, err := s.scheduleRepo.UpsertOverride(txCtx, o); err != nil {
				return fmt.Errorf("%w: failed to upsert override for %s: %v",
					ErrInternal, o.Date.Format(domain.DateFormat), err)
			}
		}

		for _, d := range deleteDates {
			if err := s.scheduleRepo.DeleteOverride(txCtx, companyID, d); err != nil {
				if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
					return fmt.Errorf("%w: no override for date %s",
						ErrOverrideNotFound, d.Format(domain.DateFormat))
				}
				return fmt.Errorf("%w: failed to delete override for %s: %v",
					ErrInternal, d.Format(domain.DateFormat), err)
			}
		}

		if cfg != nil {
			if _, err := s.scheduleRepo.UpsertConfig(txCtx, cfg); err != nil {
				return fmt.Errorf("%w: failed to upsert config: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: transaction failed for company=%d: %v", companyID, err)
		return nil, err
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for company=%d", companyID)
	return s.GetSchedule(ctx, companyID)
}

// convertWeeklyHours валидирует и конвертирует недельное расписание
func (s *Service) convertWeeklyHours(companyID int64, items []models.WeeklyHoursItem) ([]*domain.WeeklyHours, error) {
	if items == nil {
		return nil, nil
	}

	seen := make(map[int]bool, len(items))
	hours := make([]*domain.WeeklyHours, 0, len(items))

	for _, item := range items {
		if item.Weekday < 0 || item.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
		}
		if seen[item.Weekday] {
			return nil, fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, item.Weekday)
		}
		seen[item.Weekday] = true

		h, err := item.ToDomainWeeklyHours(companyID)
		if err != nil {
			return nil, fmt.Errorf("%w: weekday %d: %v", ErrInvalidInput, item.Weekday, err)
		}

		if err := validateDayWindow(h.OpenFrom, h.OpenTo, h.BreakFrom, h.BreakTo); err != nil {
			return nil, fmt.Errorf("%w: weekday %d: %v", ErrInvalidInput, item.Weekday, err)
		}

		hours = append(hours, h)
	}

	return hours, nil
}

// convertOverrides валидирует и конвертирует переопределения.
// Для частичных переопределений инвариант окна проверяется только на
// заданных полях - недостающие границы подставятся из недельного
// расписания при разрешении окна.
func (s *Service) convertOverrides(companyID int64, items []models.OverrideItem) ([]*domain.DateOverride, error) {
	overrides := make([]*domain.DateOverride, 0, len(items))

	for _, item := range items {
		o, err := item.ToDomainOverride(companyID)
		if err != nil {
			return nil, fmt.Errorf("%w: override %s: %v", ErrInvalidInput, item.Date, err)
		}

		if o.OpenFrom != nil && o.OpenTo != nil {
			if err := validateDayWindow(*o.OpenFrom, *o.OpenTo, o.BreakFrom, o.BreakTo); err != nil {
				return nil, fmt.Errorf("%w: override %s: %v", ErrInvalidInput, item.Date, err)
			}
		} else if o.BreakFrom != nil || o.BreakTo != nil {
			if err := validateBreakPair(o.BreakFrom, o.BreakTo); err != nil {
				return nil, fmt.Errorf("%w: override %s: %v", ErrInvalidInput, item.Date, err)
			}
		}

		if o.Reason != nil && len(*o.Reason) > domain.MaxOverrideReasonLength {
			return nil, fmt.Errorf("%w: override %s: reason must not exceed %d characters",
				ErrInvalidInput, item.Date, domain.MaxOverrideReasonLength)
		}

		overrides = append(overrides, o)
	}

	return overrides, nil
}

// validateDayWindow проверяет инвариант рабочего окна:
// openFrom < openTo, а перерыв целиком внутри окна
func validateDayWindow(openFrom, openTo types.TimeString, breakFrom, breakTo *types.TimeString) error {
	if !openFrom.IsBefore(openTo) {
		return fmt.Errorf("openFrom %s must be before openTo %s", openFrom, openTo)
	}

	if err := validateBreakPair(breakFrom, breakTo); err != nil {
		return err
	}

	if breakFrom != nil && breakTo != nil {
		if breakFrom.IsBefore(openFrom) || openTo.IsBefore(*breakTo) {
			return fmt.Errorf("break %s-%s must be within working hours %s-%s",
				*breakFrom, *breakTo, openFrom, openTo)
		}
	}

	return nil
}

// validateBreakPair проверяет, что перерыв задан обеими границами и не вырожден
func validateBreakPair(breakFrom, breakTo *types.TimeString) error {
	if (breakFrom == nil) != (breakTo == nil) {
		return fmt.Errorf("breakFrom and breakTo must be set together")
	}
	if breakFrom != nil && !breakFrom.IsBefore(*breakTo) {
		return fmt.Errorf("breakFrom %s must be before breakTo %s", *breakFrom, *breakTo)
	}
	return nil
}

// validateConfig проверяет параметры сетки слотов
func validateConfig(cfg *models.ConfigItem) error {
	if cfg.StepMinutes < domain.MinStepMinutes || cfg.StepMinutes > domain.MaxStepMinutes {
		return fmt.Errorf("%w: stepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinStepMinutes, domain.MaxStepMinutes)
	}
	if cfg.AdvanceBookingDays < domain.MinAdvanceBookingDays || cfg.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if cfg.MinBookingNoticeMinutes < domain.MinNoticeMinutes || cfg.MinBookingNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
	}
	return nil
}

// parseDates парсит список дат формата YYYY-MM-DD
func parseDates(dates []string) ([]time.Time, error) {
	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, t)
	}
	return parsed, nil
}
