package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	scheduleRepo "github.com/salonhub/SLN-BookingService/internal/infra/storage/schedule"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

type stubBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (s *stubBookingRepo) GetByCompanyWithFilter(_ context.Context, _ domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, s.err
}

type stubScheduleRepo struct {
	weekly   *domain.WeeklyHours
	override *domain.DateOverride
	config   *domain.CompanyScheduleConfig
}

func (s *stubScheduleRepo) GetWeeklyHoursForDay(_ context.Context, _ int64, _ time.Weekday) (*domain.WeeklyHours, error) {
	if s.weekly == nil {
		return nil, scheduleRepo.ErrWeeklyHoursNotFound
	}
	return s.weekly, nil
}

func (s *stubScheduleRepo) GetOverride(_ context.Context, _ int64, _ time.Time) (*domain.DateOverride, error) {
	if s.override == nil {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return s.override, nil
}

func (s *stubScheduleRepo) GetConfig(_ context.Context, _ int64) (*domain.CompanyScheduleConfig, error) {
	if s.config == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return s.config, nil
}

type stubStaffRepo struct {
	staff []*domain.Staff
}

func (s *stubStaffRepo) ListBookable(_ context.Context, _ int64) ([]*domain.Staff, error) {
	return s.staff, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func ptrTS(s string) *types.TimeString {
	t := types.TimeString(s)
	return &t
}

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // понедельник

func newTestUseCase(bookings *stubBookingRepo, schedule *stubScheduleRepo, staff *stubStaffRepo) *UseCase {
	uc := NewUseCase(bookings, schedule, staff, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func weeklyFor(date time.Time, from, to string) *domain.WeeklyHours {
	return &domain.WeeklyHours{
		CompanyID: 1,
		Weekday:   date.Weekday(),
		OpenFrom:  ts(from),
		OpenTo:    ts(to),
	}
}

func futureDate() time.Time {
	return testNow.AddDate(0, 0, 7)
}

func TestExecute_HappyPath(t *testing.T) {
	date := futureDate()

	schedule := &stubScheduleRepo{weekly: weeklyFor(date, "09:00", "17:00")}
	staff := &stubStaffRepo{staff: []*domain.Staff{
		{ID: 1, CompanyID: 1, Name: "Анна", AvailableForBooking: true},
		{ID: 2, CompanyID: 1, Name: "Борис", AvailableForBooking: true},
	}}

	uc := newTestUseCase(&stubBookingRepo{}, schedule, staff)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            date,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	// 09:00..16:30 с шагом 15 минут = 31 слот
	require.Len(t, resp.Slots, 31)
	assert.Equal(t, ts("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("16:30"), resp.Slots[30].StartTime)
	assert.Equal(t, domain.DefaultStepMinutes, resp.StepMinutes)

	for _, slot := range resp.Slots {
		assert.Equal(t, 2, slot.FreeStaff)
		assert.Equal(t, 2, slot.TotalStaff)
	}
}

func TestExecute_BookingReducesFreeStaff(t *testing.T) {
	date := futureDate()
	staffID := int64(1)

	schedule := &stubScheduleRepo{weekly: weeklyFor(date, "09:00", "12:00")}
	staff := &stubStaffRepo{staff: []*domain.Staff{
		{ID: 1, AvailableForBooking: true},
		{ID: 2, AvailableForBooking: true},
	}}
	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		{ID: 10, CompanyID: 1, StaffID: &staffID, BookingDate: date,
			TimeFrom: ts("09:00"), TimeTo: ts("10:00"), Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(bookings, schedule, staff)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            date,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	// Пока мастер 1 занят, слот остается доступным за счет мастера 2
	first := resp.Slots[0]
	assert.Equal(t, ts("09:00"), first.StartTime)
	assert.Equal(t, 1, first.FreeStaff)
	assert.Equal(t, 2, first.TotalStaff)

	// После 10:00 свободны оба
	for _, slot := range resp.Slots {
		if !slot.StartTime.IsBefore(ts("10:00")) {
			assert.Equal(t, 2, slot.FreeStaff, "slot %s", slot.StartTime)
		}
	}
}

func TestExecute_ClosedByOverride(t *testing.T) {
	date := futureDate()

	schedule := &stubScheduleRepo{
		weekly:   weeklyFor(date, "09:00", "17:00"),
		override: &domain.DateOverride{CompanyID: 1, Date: date}, // все поля nil = закрыто весь день
	}
	staff := &stubStaffRepo{staff: []*domain.Staff{{ID: 1, AvailableForBooking: true}}}

	uc := newTestUseCase(&stubBookingRepo{}, schedule, staff)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            date,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OverrideShortensDay(t *testing.T) {
	date := futureDate()

	schedule := &stubScheduleRepo{
		weekly: weeklyFor(date, "09:00", "17:00"),
		override: &domain.DateOverride{
			CompanyID: 1,
			Date:      date,
			OpenFrom:  ptrTS("10:00"),
			OpenTo:    ptrTS("13:00"),
		},
	}
	staff := &stubStaffRepo{staff: []*domain.Staff{{ID: 1, AvailableForBooking: true}}}

	uc := newTestUseCase(&stubBookingRepo{}, schedule, staff)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            date,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, ts("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("12:00"), resp.Slots[len(resp.Slots)-1].StartTime)
}

func TestExecute_BreakExcluded(t *testing.T) {
	date := futureDate()

	weekly := weeklyFor(date, "09:00", "17:00")
	weekly.BreakFrom = ptrTS("12:00")
	weekly.BreakTo = ptrTS("13:00")

	schedule := &stubScheduleRepo{weekly: weekly, config: &domain.CompanyScheduleConfig{
		CompanyID:   1,
		StepMinutes: 60,
	}}
	staff := &stubStaffRepo{staff: []*domain.Staff{{ID: 1, AvailableForBooking: true}}}

	uc := newTestUseCase(&stubBookingRepo{}, schedule, staff)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            date,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	starts := make([]types.TimeString, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []types.TimeString{
		ts("09:00"), ts("10:00"), ts("11:00"),
		ts("13:00"), ts("14:00"), ts("15:00"), ts("16:00"),
	}, starts)
}

func TestExecute_NoWeeklyHours(t *testing.T) {
	date := futureDate()

	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubScheduleRepo{},
		&stubStaffRepo{staff: []*domain.Staff{{ID: 1, AvailableForBooking: true}}},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            date,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoBookableStaff(t *testing.T) {
	date := futureDate()

	uc := newTestUseCase(
		&stubBookingRepo{},
		&stubScheduleRepo{weekly: weeklyFor(date, "09:00", "17:00")},
		&stubStaffRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            date,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	// now = 10:00, notice по умолчанию 60 минут: слоты раньше 11:00 отбрасываются
	schedule := &stubScheduleRepo{weekly: weeklyFor(testNow, "09:00", "12:00")}
	staff := &stubStaffRepo{staff: []*domain.Staff{{ID: 1, AvailableForBooking: true}}}

	uc := newTestUseCase(&stubBookingRepo{}, schedule, staff)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            testNow,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, ts("11:00"), resp.Slots[0].StartTime)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, &stubScheduleRepo{}, &stubStaffRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            testNow.AddDate(0, 0, -1),
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	schedule := &stubScheduleRepo{config: &domain.CompanyScheduleConfig{
		CompanyID:          1,
		StepMinutes:        15,
		AdvanceBookingDays: 14,
	}}

	uc := newTestUseCase(&stubBookingRepo{}, schedule, &stubStaffRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		CompanyID:       1,
		Date:            testNow.AddDate(0, 0, 30),
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, &stubScheduleRepo{}, &stubStaffRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"нулевой companyID", &Request{CompanyID: 0, Date: futureDate(), DurationMinutes: 30}},
		{"нулевая дата", &Request{CompanyID: 1, DurationMinutes: 30}},
		{"нулевая длительность", &Request{CompanyID: 1, Date: futureDate(), DurationMinutes: 0}},
		{"слишком большая длительность", &Request{CompanyID: 1, Date: futureDate(), DurationMinutes: 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
