package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	scheduleRepo "github.com/salonhub/SLN-BookingService/internal/infra/storage/schedule"
	"github.com/salonhub/SLN-BookingService/internal/scheduling"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	staffRepo    StaffRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	staffRepo StaffRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		staffRepo:    staffRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: company=%d, date=%s, duration=%d",
		req.CompanyID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем конфигурацию расписания (или дефолты)
	cfg, err := uc.loadConfig(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	// 3. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, cfg.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		CompanyID:       req.CompanyID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		StepMinutes:     cfg.StepMinutes,
		Slots:           []Slot{},
	}

	// 4. Определяем эффективное окно работы на дату
	// (переопределение на дату имеет абсолютный приоритет над недельным расписанием)
	window, err := uc.loadWindow(ctx, req.CompanyID, req.Date)
	if err != nil {
		return nil, err
	}
	if window == nil {
		// Закрытый день - штатный пустой результат, не ошибка
		uc.logger.Info("GetAvailableSlots: company=%d is closed on %s",
			req.CompanyID, req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Получаем реестр доступных мастеров
	staff, err := uc.staffRepo.ListBookable(ctx, req.CompanyID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}
	if len(staff) == 0 {
		uc.logger.Info("GetAvailableSlots: company=%d has no bookable staff", req.CompanyID)
		return response, nil
	}

	staffIDs := make([]int64, len(staff))
	for i, s := range staff {
		staffIDs[i] = s.ID
	}

	// 6. Собираем занятость мастеров из активных бронирований дня
	filter := domain.CompanyBookingsFilter{
		CompanyID:       req.CompanyID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	busy := scheduling.NewBusyIndex(bookings)

	// 7. Генерируем слоты
	slots := scheduling.GenerateSlots(window, busy, staffIDs, req.DurationMinutes, cfg.StepMinutes)

	// 8. Для сегодняшней даты отбрасываем слоты, нарушающие minBookingNoticeMinutes
	slots = filterByNotice(slots, req.Date, now, cfg.MinBookingNoticeMinutes)

	// 9. Аннотируем каждый слот количеством свободных мастеров
	response.Slots = make([]Slot, 0, len(slots))
	for _, start := range slots {
		end, err := start.AddMinutes(req.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute slot end: %v", ErrInternal, err)
		}
		response.Slots = append(response.Slots, Slot{
			StartTime:  start,
			FreeStaff:  scheduling.CountFreeStaff(window, busy, staffIDs, start, end),
			TotalStaff: len(staffIDs),
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for company=%d, date=%s",
		len(response.Slots), req.CompanyID, req.Date.Format(domain.DateFormat))

	return response, nil
}

// loadConfig получает конфигурацию расписания компании, подставляя дефолты
func (uc *UseCase) loadConfig(ctx context.Context, companyID int64) (*domain.CompanyScheduleConfig, error) {
	cfg, err := uc.scheduleRepo.GetConfig(ctx, companyID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if cfg == nil {
		cfg = &domain.CompanyScheduleConfig{
			CompanyID:               companyID,
			StepMinutes:             domain.DefaultStepMinutes,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
		}
		uc.logger.Info("GetAvailableSlots: using default config for company=%d", companyID)
	}

	return cfg, nil
}

// loadWindow разрешает эффективное окно работы компании на дату.
// nil означает закрытый день.
func (uc *UseCase) loadWindow(ctx context.Context, companyID int64, date time.Time) (*scheduling.Window, error) {
	override, err := uc.scheduleRepo.GetOverride(ctx, companyID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get override: %v", err)
		return nil, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	weekly, err := uc.scheduleRepo.GetWeeklyHoursForDay(ctx, companyID, date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrWeeklyHoursNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get weekly hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly hours: %v", ErrInternal, err)
	}

	return scheduling.ResolveWindow(weekly, override), nil
}

// filterByNotice для сегодняшней даты оставляет только слоты,
// начинающиеся не раньше now + noticeMinutes
func filterByNotice(slots []types.TimeString, date, now time.Time, noticeMinutes int) []types.TimeString {
	if !isSameDay(date, now) {
		return slots
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(noticeMinutes)
	if err != nil {
		// Порог уходит за полночь - на сегодня бронировать уже поздно
		return []types.TimeString{}
	}

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(minAllowedTime) {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}
