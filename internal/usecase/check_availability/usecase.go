package check_availability

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

// UseCase use case проверки доступности компаний на дату.
// Сводит список слотов к булеву значению "есть ли подходящее время" -
// поисковая выдача фильтрует этим флагом карточки компаний.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	staffRepo    StaffRepository
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
		logger:       logger,
	}
}

// Execute выполняет проверку доступности для каждой компании из запроса.
// Слоты компании считаются один раз за вызов, даже если компания
// встречается в списке несколько раз.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: companies=%d, date=%s, duration=%d",
		len(req.CompanyIDs), req.Date.Format(domain.DateFormat), req.DurationMinutes)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	desiredFrom, desiredTo, err := desiredWindow(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid desired window: %v", err)
		return nil, err
	}

	response := &Response{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Results:         make([]CompanyAvailability, 0, len(req.CompanyIDs)),
	}

	// Мемоизация в рамках одного прохода фильтрации
	seen := make(map[int64]bool, len(req.CompanyIDs))

	for _, companyID := range req.CompanyIDs {
		if _, ok := seen[companyID]; ok {
			continue
		}

		slots, err := uc.computeSlots(ctx, companyID, req.Date, req.DurationMinutes)
		if err != nil {
			return nil, err
		}

		available := scheduling.AnySlotWithin(slots, desiredFrom, desiredTo)
		seen[companyID] = available

		response.Results = append(response.Results, CompanyAvailability{
			CompanyID: companyID,
			Available: available,
		})
	}

	uc.logger.Info("CheckAvailability: checked %d companies for %s",
		len(response.Results), req.Date.Format(domain.DateFormat))

	return response, nil
}

// computeSlots считает полный список слотов компании на дату.
// Та же последовательность, что и в листинге слотов: окно -> реестр ->
// занятость -> генерация.
func (uc *UseCase) computeSlots(ctx context.Context, companyID int64, date time.Time, durationMinutes int) ([]types.TimeString, error) {
	cfg, err := uc.scheduleRepo.GetConfig(ctx, companyID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("CheckAvailability: failed to get config for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	stepMinutes := domain.DefaultStepMinutes
	if cfg != nil {
		stepMinutes = cfg.StepMinutes
	}

	override, err := uc.scheduleRepo.GetOverride(ctx, companyID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.logger.Error("CheckAvailability: failed to get override for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get override: %v", ErrInternal, err)
	}

	weekly, err := uc.scheduleRepo.GetWeeklyHoursForDay(ctx, companyID, date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrWeeklyHoursNotFound) {
		uc.logger.Error("CheckAvailability: failed to get weekly hours for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get weekly hours: %v", ErrInternal, err)
	}

	window := scheduling.ResolveWindow(weekly, override)
	if window == nil {
		return nil, nil
	}

	staff, err := uc.staffRepo.ListBookable(ctx, companyID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list staff for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}
	if len(staff) == 0 {
		return nil, nil
	}

	staffIDs := make([]int64, len(staff))
	for i, s := range staff {
		staffIDs[i] = s.ID
	}

	filter := domain.CompanyBookingsFilter{
		CompanyID:       companyID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	busy := scheduling.NewBusyIndex(bookings)

	return scheduling.GenerateSlots(window, busy, staffIDs, durationMinutes, stepMinutes), nil
}

// desiredWindow нормализует желаемое окно запроса.
// Если указано только начало, конец = начало + DefaultDesiredWindowMinutes.
func desiredWindow(req *Request) (*types.TimeString, types.TimeString, error) {
	if req.DesiredFrom == nil {
		return nil, "", nil
	}

	if req.DesiredTo != nil {
		return req.DesiredFrom, *req.DesiredTo, nil
	}

	to, err := req.DesiredFrom.AddMinutes(DefaultDesiredWindowMinutes)
	if err != nil {
		// Начало окна так близко к полуночи, что окно по умолчанию не помещается -
		// проверяем до конца суток
		return req.DesiredFrom, types.TimeString("24:00"), nil
	}

	return req.DesiredFrom, to, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if len(req.CompanyIDs) == 0 {
		return fmt.Errorf("%w: at least one companyID is required", ErrInvalidInput)
	}

	for _, id := range req.CompanyIDs {
		if id <= 0 {
			return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.DesiredFrom != nil {
		if err := req.DesiredFrom.Validate(); err != nil {
			return fmt.Errorf("%w: invalid desiredFrom: %v", ErrInvalidInput, err)
		}
	}

	if req.DesiredTo != nil {
		if req.DesiredFrom == nil {
			return fmt.Errorf("%w: desiredTo requires desiredFrom", ErrInvalidInput)
		}
		if err := req.DesiredTo.Validate(); err != nil {
			return fmt.Errorf("%w: invalid desiredTo: %v", ErrInvalidInput, err)
		}
		if !req.DesiredFrom.IsBefore(*req.DesiredTo) {
			return fmt.Errorf("%w: desiredFrom must be before desiredTo", ErrInvalidInput)
		}
	}

	return nil
}
