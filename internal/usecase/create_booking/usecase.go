package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	bookingRepo "github.com/salonhub/SLN-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/salonhub/SLN-BookingService/internal/infra/storage/schedule"
	"github.com/salonhub/SLN-BookingService/internal/scheduling"
)

// UseCase use case создания бронирования с автоназначением мастера.
//
// Выбор мастера - это check-then-act: между чтением занятости и записью
// бронирования есть окно гонки. Оно закрыто двумя механизмами:
// сериализуемой транзакцией с FOR UPDATE на строках дня и exclusion
// constraint в БД, который отклоняет пересекающийся интервал мастера
// даже при конкурентной записи мимо транзакции.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	staffRepo    StaffRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		staffRepo:    staffRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, company=%d, date=%s, time=%s, duration=%d",
		req.UserID, req.CompanyID, req.Date.Format(domain.DateFormat), req.TimeFrom, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	timeTo, err := req.TimeFrom.AddMinutes(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: time range exceeds day bounds: %v", err)
		return nil, fmt.Errorf("%w: time range exceeds day bounds", ErrInvalidTimeSlot)
	}

	var result *domain.Booking
	var assignedStaff *domain.Staff

	// 2. Проверка доступности и запись выполняются в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Конфигурация расписания (или дефолты)
		cfg, err := uc.loadConfig(txCtx, req.CompanyID)
		if err != nil {
			return err
		}

		// 2.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, cfg.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 2.3. Минимальное время до начала записи
		if err := validateBookingTime(req.Date, req.TimeFrom, now, cfg.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 2.4. Эффективное окно работы на дату
		window, err := uc.loadWindow(txCtx, req.CompanyID, req)
		if err != nil {
			return err
		}
		if window == nil {
			uc.logger.Warn("CreateBooking: company=%d is closed on %s",
				req.CompanyID, req.Date.Format(domain.DateFormat))
			return ErrCompanyClosed
		}

		// 2.5. Интервал должен лежать в окне и попадать на сетку слотов
		if err := validateSlot(window, req.TimeFrom, timeTo, cfg.StepMinutes); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 2.6. Реестр доступных мастеров (стабильный порядок - детерминизм назначения)
		staff, err := uc.staffRepo.ListBookable(txCtx, req.CompanyID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list staff: %v", err)
			return fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
		}
		if len(staff) == 0 {
			uc.logger.Warn("CreateBooking: company=%d has no bookable staff", req.CompanyID)
			return ErrNoStaffAvailable
		}

		staffIDs := make([]int64, len(staff))
		staffByID := make(map[int64]*domain.Staff, len(staff))
		for i, s := range staff {
			staffIDs[i] = s.ID
			staffByID[s.ID] = s
		}

		// 2.7. Занятость дня с блокировкой строк (FOR UPDATE)
		filter := domain.CompanyBookingsFilter{
			CompanyID:       req.CompanyID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByCompanyWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		busy := scheduling.NewBusyIndex(bookings)
		if window.HasBreak() {
			busy = busy.WithBlackout(staffIDs, scheduling.Interval{From: *window.BreakFrom, To: *window.BreakTo})
		}

		// 2.8. Выбираем первого свободного мастера в порядке реестра
		staffID, err := scheduling.Assign(staffIDs, busy, req.TimeFrom, timeTo)
		if err != nil {
			if errors.Is(err, scheduling.ErrNoStaffAvailable) {
				uc.logger.Warn("CreateBooking: no staff available for company=%d, %s-%s",
					req.CompanyID, req.TimeFrom, timeTo)
				return ErrNoStaffAvailable
			}
			uc.logger.Error("CreateBooking: assignment failed: %v", err)
			return fmt.Errorf("%w: assignment failed: %v", ErrInternal, err)
		}

		assignedStaff = staffByID[staffID]

		// 2.9. Сохраняем бронирование
		booking := &domain.Booking{
			UserID:      req.UserID,
			CompanyID:   req.CompanyID,
			StaffID:     &staffID,
			BookingDate: req.Date,
			TimeFrom:    req.TimeFrom,
			TimeTo:      timeTo,
			Status:      domain.StatusConfirmed,
			ServiceName: req.ServiceName,
			Notes:       req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingConflict) {
				// Конкурентная запись успела раньше: слот был валиден при чтении,
				// но интервал мастера уже занят. Отдельная от ErrNoStaffAvailable
				// ошибка - вызывающая сторона пересчитывает слоты.
				uc.logger.Warn("CreateBooking: concurrent conflict for staff=%d, company=%d", staffID, req.CompanyID)
				return ErrBookingConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, staff=%d", result.ID, *result.StaffID)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		CompanyID:   result.CompanyID,
		StaffID:     *result.StaffID,
		StaffName:   assignedStaff.Name,
		BookingDate: result.BookingDate,
		TimeFrom:    result.TimeFrom,
		TimeTo:      result.TimeTo,
		Status:      string(result.Status),
		ServiceName: result.ServiceName,
		Notes:       result.Notes,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// loadConfig получает конфигурацию расписания компании, подставляя дефолты
func (uc *UseCase) loadConfig(ctx context.Context, companyID int64) (*domain.CompanyScheduleConfig, error) {
	cfg, err := uc.scheduleRepo.GetConfig(ctx, companyID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateBooking: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if cfg == nil {
		cfg = &domain.CompanyScheduleConfig{
			CompanyID:               companyID,
			StepMinutes:             domain.DefaultStepMinutes,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
		}
		uc.logger.Info("CreateBooking: using default config for company=%d", companyID)
	}

	return cfg, nil
}

// loadWindow разрешает эффективное окно работы компании на дату запроса
func (uc *UseCase) loadWindow(ctx context.Context, companyID int64, req *Request) (*scheduling.Window, error) {
	override, err := uc.scheduleRepo.GetOverride(ctx, companyID, req.Date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("CreateBooking: failed to get override: %v", err)
		return nil, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	weekly, err := uc.scheduleRepo.GetWeeklyHoursForDay(ctx, companyID, req.Date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrWeeklyHoursNotFound) {
		uc.logger.Error("CreateBooking: failed to get weekly hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly hours: %v", ErrInternal, err)
	}

	return scheduling.ResolveWindow(weekly, override), nil
}
