package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	bookingRepo "github.com/salonhub/SLN-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/salonhub/SLN-BookingService/internal/infra/storage/schedule"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

type stubBookingRepo struct {
	bookings  []*domain.Booking
	created   *domain.Booking
	createErr error
}

func (s *stubBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *stubBookingRepo) GetByCompanyWithFilter(_ context.Context, _ domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
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

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func futureDate() time.Time {
	return testNow.AddDate(0, 0, 7)
}

func newTestUseCase(bookings *stubBookingRepo, schedule *stubScheduleRepo, staff *stubStaffRepo) *UseCase {
	uc := NewUseCase(bookings, schedule, staff, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func defaultSchedule(date time.Time) *stubScheduleRepo {
	return &stubScheduleRepo{weekly: &domain.WeeklyHours{
		CompanyID: 1,
		Weekday:   date.Weekday(),
		OpenFrom:  ts("09:00"),
		OpenTo:    ts("18:00"),
	}}
}

func twoStaff() *stubStaffRepo {
	return &stubStaffRepo{staff: []*domain.Staff{
		{ID: 1, CompanyID: 1, Name: "Анна", AvailableForBooking: true},
		{ID: 2, CompanyID: 1, Name: "Борис", AvailableForBooking: true},
	}}
}

func validRequest(date time.Time) *Request {
	return &Request{
		UserID:          7,
		CompanyID:       1,
		Date:            date,
		TimeFrom:        ts("10:00"),
		DurationMinutes: 60,
		ServiceName:     "Стрижка",
	}
}

func TestExecute_AssignsFirstFreeStaff(t *testing.T) {
	date := futureDate()
	bookings := &stubBookingRepo{}

	uc := newTestUseCase(bookings, defaultSchedule(date), twoStaff())

	resp, err := uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(1), resp.StaffID)
	assert.Equal(t, "Анна", resp.StaffName)
	assert.Equal(t, ts("10:00"), resp.TimeFrom)
	assert.Equal(t, ts("11:00"), resp.TimeTo)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.NotNil(t, bookings.created)
	require.NotNil(t, bookings.created.StaffID)
	assert.Equal(t, int64(1), *bookings.created.StaffID)
}

func TestExecute_SkipsBusyStaff(t *testing.T) {
	date := futureDate()
	firstStaff := int64(1)

	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		{ID: 10, CompanyID: 1, StaffID: &firstStaff, BookingDate: date,
			TimeFrom: ts("09:30"), TimeTo: ts("10:30"), Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(bookings, defaultSchedule(date), twoStaff())

	resp, err := uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.StaffID)
	assert.Equal(t, "Борис", resp.StaffName)
}

func TestExecute_TouchingBookingDoesNotBlock(t *testing.T) {
	date := futureDate()
	firstStaff := int64(1)

	// Заканчивается ровно в 10:00 - интервалы полуоткрытые, конфликта нет
	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		{ID: 10, CompanyID: 1, StaffID: &firstStaff, BookingDate: date,
			TimeFrom: ts("09:00"), TimeTo: ts("10:00"), Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(bookings, defaultSchedule(date), twoStaff())

	resp, err := uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.StaffID)
}

func TestExecute_NoStaffAvailable(t *testing.T) {
	date := futureDate()
	first, second := int64(1), int64(2)

	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		{ID: 10, CompanyID: 1, StaffID: &first, BookingDate: date,
			TimeFrom: ts("10:00"), TimeTo: ts("11:00"), Status: domain.StatusConfirmed},
		{ID: 11, CompanyID: 1, StaffID: &second, BookingDate: date,
			TimeFrom: ts("09:30"), TimeTo: ts("10:30"), Status: domain.StatusConfirmed},
	}}

	uc := newTestUseCase(bookings, defaultSchedule(date), twoStaff())

	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrNoStaffAvailable)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	date := futureDate()
	firstStaff := int64(1)

	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		{ID: 10, CompanyID: 1, StaffID: &firstStaff, BookingDate: date,
			TimeFrom: ts("10:00"), TimeTo: ts("11:00"), Status: domain.StatusCancelledByUser},
	}}

	uc := newTestUseCase(bookings, defaultSchedule(date), twoStaff())

	resp, err := uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.StaffID)
}

func TestExecute_CompanyClosed(t *testing.T) {
	date := futureDate()

	schedule := defaultSchedule(date)
	schedule.override = &domain.DateOverride{CompanyID: 1, Date: date} // закрыто весь день

	uc := newTestUseCase(&stubBookingRepo{}, schedule, twoStaff())

	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrCompanyClosed)
}

func TestExecute_BreakBlocksAssignment(t *testing.T) {
	date := futureDate()

	schedule := defaultSchedule(date)
	schedule.weekly.BreakFrom = ptrTS("10:30")
	schedule.weekly.BreakTo = ptrTS("11:30")

	uc := newTestUseCase(&stubBookingRepo{}, schedule, twoStaff())

	// 10:00-11:00 пересекается с перерывом 10:30-11:30
	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrNoStaffAvailable)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	date := futureDate()

	uc := newTestUseCase(&stubBookingRepo{}, defaultSchedule(date), twoStaff())

	req := validRequest(date)
	req.TimeFrom = ts("17:30") // конец 18:30 выходит за OpenTo

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_OffGridStart(t *testing.T) {
	date := futureDate()

	uc := newTestUseCase(&stubBookingRepo{}, defaultSchedule(date), twoStaff())

	req := validRequest(date)
	req.TimeFrom = ts("10:07") // не кратно шагу 15 минут от 09:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, defaultSchedule(testNow), twoStaff())

	req := validRequest(testNow.AddDate(0, 0, -1))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	date := futureDate()

	schedule := defaultSchedule(date)
	schedule.config = &domain.CompanyScheduleConfig{
		CompanyID:          1,
		StepMinutes:        15,
		AdvanceBookingDays: 3,
	}

	uc := newTestUseCase(&stubBookingRepo{}, schedule, twoStaff())

	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	// now = 10:00, notice по умолчанию 60 минут
	uc := newTestUseCase(&stubBookingRepo{}, defaultSchedule(testNow), twoStaff())

	req := validRequest(testNow)
	req.TimeFrom = ts("10:30")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_ConcurrentConflict(t *testing.T) {
	date := futureDate()

	bookings := &stubBookingRepo{createErr: bookingRepo.ErrBookingConflict}

	uc := newTestUseCase(bookings, defaultSchedule(date), twoStaff())

	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrBookingConflict)
}

func TestExecute_InvalidInput(t *testing.T) {
	date := futureDate()
	uc := newTestUseCase(&stubBookingRepo{}, defaultSchedule(date), twoStaff())

	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'a'
	}
	notes := string(longNotes)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нулевой userID", func(r *Request) { r.UserID = 0 }},
		{"нулевой companyID", func(r *Request) { r.CompanyID = 0 }},
		{"нулевая дата", func(r *Request) { r.Date = time.Time{} }},
		{"некорректное время", func(r *Request) { r.TimeFrom = ts("25:00") }},
		{"нулевая длительность", func(r *Request) { r.DurationMinutes = 0 }},
		{"пустое название услуги", func(r *Request) { r.ServiceName = "" }},
		{"слишком длинные заметки", func(r *Request) { r.Notes = &notes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(date)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
