package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	scheduleRepo "github.com/salonhub/SLN-BookingService/internal/infra/storage/schedule"
	"github.com/salonhub/SLN-BookingService/internal/service/schedule/models"
)

type stubScheduleRepo struct {
	weekly    []*domain.WeeklyHours
	overrides []*domain.DateOverride
	config    *domain.CompanyScheduleConfig

	replacedWeekly []*domain.WeeklyHours
	upserted       []*domain.DateOverride
	deleted        []time.Time
	upsertedConfig *domain.CompanyScheduleConfig
}

func (s *stubScheduleRepo) GetWeeklyHours(_ context.Context, _ int64) ([]*domain.WeeklyHours, error) {
	return s.weekly, nil
}

func (s *stubScheduleRepo) ReplaceWeeklyHours(_ context.Context, _ int64, hours []*domain.WeeklyHours) error {
	s.replacedWeekly = hours
	s.weekly = hours
	return nil
}

func (s *stubScheduleRepo) ListOverrides(_ context.Context, _ int64, _, _ time.Time) ([]*domain.DateOverride, error) {
	return s.overrides, nil
}

func (s *stubScheduleRepo) UpsertOverride(_ context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	s.upserted = append(s.upserted, override)
	s.overrides = append(s.overrides, override)
	return override, nil
}

func (s *stubScheduleRepo) DeleteOverride(_ context.Context, _ int64, date time.Time) error {
	s.deleted = append(s.deleted, date)
	return nil
}

func (s *stubScheduleRepo) GetConfig(_ context.Context, _ int64) (*domain.CompanyScheduleConfig, error) {
	if s.config == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return s.config, nil
}

func (s *stubScheduleRepo) UpsertConfig(_ context.Context, cfg *domain.CompanyScheduleConfig) (*domain.CompanyScheduleConfig, error) {
	s.upsertedConfig = cfg
	s.config = cfg
	return cfg, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ptrStr(s string) *string {
	return &s
}

func newTestService(repo *stubScheduleRepo) *Service {
	return NewService(repo, passthroughTxManager{}, nopLogger{})
}

func TestUpdateSchedule_ReplacesWeeklyHours(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc := newTestService(repo)

	resp, err := svc.UpdateSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		WeeklyHours: []models.WeeklyHoursItem{
			{Weekday: 1, OpenFrom: "09:00", OpenTo: "18:00"},
			{Weekday: 2, OpenFrom: "09:00", OpenTo: "18:00", BreakFrom: ptrStr("13:00"), BreakTo: ptrStr("14:00")},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.replacedWeekly, 2)
	assert.Equal(t, time.Tuesday, repo.replacedWeekly[1].Weekday)
	require.NotNil(t, repo.replacedWeekly[1].BreakFrom)
	assert.Equal(t, "13:00", repo.replacedWeekly[1].BreakFrom.String())

	require.Len(t, resp.WeeklyHours, 2)
}

func TestUpdateSchedule_UpsertsAndDeletesOverrides(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc := newTestService(repo)

	_, err := svc.UpdateSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		Overrides: []models.OverrideItem{
			{Date: "2026-03-08", Reason: ptrStr("праздничный день")}, // закрыто весь день
			{Date: "2026-03-09", OpenFrom: ptrStr("10:00"), OpenTo: ptrStr("15:00")},
		},
		DeleteOverrideDates: []string{"2026-03-10"},
	})
	require.NoError(t, err)

	require.Len(t, repo.upserted, 2)
	assert.True(t, repo.upserted[0].IsClosedAllDay())
	assert.False(t, repo.upserted[1].IsClosedAllDay())

	require.Len(t, repo.deleted, 1)
	assert.Equal(t, "2026-03-10", repo.deleted[0].Format(domain.DateFormat))
}

func TestUpdateSchedule_PartialOverrideKeepsUnsetFields(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc := newTestService(repo)

	// Переопределяется только открытие - закрытие возьмется из недельного
	// расписания при разрешении окна
	_, err := svc.UpdateSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		Overrides: []models.OverrideItem{
			{Date: "2026-03-09", OpenFrom: ptrStr("12:00")},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	require.NotNil(t, repo.upserted[0].OpenFrom)
	assert.Nil(t, repo.upserted[0].OpenTo)
}

func TestUpdateSchedule_UpsertsConfig(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc := newTestService(repo)

	resp, err := svc.UpdateSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		Config: &models.ConfigItem{
			StepMinutes:             30,
			AdvanceBookingDays:      14,
			MinBookingNoticeMinutes: 120,
		},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.upsertedConfig)
	assert.Equal(t, 30, repo.upsertedConfig.StepMinutes)
	assert.Equal(t, 30, resp.Config.StepMinutes)
}

func TestUpdateSchedule_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateScheduleRequest
	}{
		{
			"инвертированное окно",
			&models.UpdateScheduleRequest{WeeklyHours: []models.WeeklyHoursItem{
				{Weekday: 1, OpenFrom: "18:00", OpenTo: "09:00"},
			}},
		},
		{
			"перерыв без конца",
			&models.UpdateScheduleRequest{WeeklyHours: []models.WeeklyHoursItem{
				{Weekday: 1, OpenFrom: "09:00", OpenTo: "18:00", BreakFrom: ptrStr("13:00")},
			}},
		},
		{
			"перерыв вне окна",
			&models.UpdateScheduleRequest{WeeklyHours: []models.WeeklyHoursItem{
				{Weekday: 1, OpenFrom: "09:00", OpenTo: "18:00", BreakFrom: ptrStr("17:30"), BreakTo: ptrStr("18:30")},
			}},
		},
		{
			"инвертированный перерыв",
			&models.UpdateScheduleRequest{WeeklyHours: []models.WeeklyHoursItem{
				{Weekday: 1, OpenFrom: "09:00", OpenTo: "18:00", BreakFrom: ptrStr("14:00"), BreakTo: ptrStr("13:00")},
			}},
		},
		{
			"дубликат дня недели",
			&models.UpdateScheduleRequest{WeeklyHours: []models.WeeklyHoursItem{
				{Weekday: 1, OpenFrom: "09:00", OpenTo: "18:00"},
				{Weekday: 1, OpenFrom: "10:00", OpenTo: "17:00"},
			}},
		},
		{
			"некорректный день недели",
			&models.UpdateScheduleRequest{WeeklyHours: []models.WeeklyHoursItem{
				{Weekday: 7, OpenFrom: "09:00", OpenTo: "18:00"},
			}},
		},
		{
			"некорректное время",
			&models.UpdateScheduleRequest{WeeklyHours: []models.WeeklyHoursItem{
				{Weekday: 1, OpenFrom: "9am", OpenTo: "18:00"},
			}},
		},
		{
			"некорректная дата переопределения",
			&models.UpdateScheduleRequest{Overrides: []models.OverrideItem{
				{Date: "08.03.2026"},
			}},
		},
		{
			"инвертированное окно переопределения",
			&models.UpdateScheduleRequest{Overrides: []models.OverrideItem{
				{Date: "2026-03-09", OpenFrom: ptrStr("15:00"), OpenTo: ptrStr("10:00")},
			}},
		},
		{
			"слишком маленький шаг сетки",
			&models.UpdateScheduleRequest{Config: &models.ConfigItem{
				StepMinutes: 1, AdvanceBookingDays: 14, MinBookingNoticeMinutes: 60,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubScheduleRepo{}
			svc := newTestService(repo)

			_, err := svc.UpdateSchedule(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)

			// Ничего не должно быть записано
			assert.Nil(t, repo.replacedWeekly)
			assert.Empty(t, repo.upserted)
			assert.Nil(t, repo.upsertedConfig)
		})
	}
}

func TestGetSchedule_DefaultsConfigWhenMissing(t *testing.T) {
	repo := &stubScheduleRepo{weekly: []*domain.WeeklyHours{
		{CompanyID: 1, Weekday: time.Monday, OpenFrom: "09:00", OpenTo: "18:00"},
	}}
	svc := newTestService(repo)

	resp, err := svc.GetSchedule(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultStepMinutes, resp.Config.StepMinutes)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.Config.MinBookingNoticeMinutes)
	require.Len(t, resp.WeeklyHours, 1)
	assert.Equal(t, int(time.Monday), resp.WeeklyHours[0].Weekday)
}
