package models

import (
	"time"

	"github.com/salonhub/SLN-BookingService/internal/domain"
	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// Request модели

// WeeklyHoursItem расписание на один день недели
type WeeklyHoursItem struct {
	Weekday   int     `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	OpenFrom  string  `json:"openFrom"`
	OpenTo    string  `json:"openTo"`
	BreakFrom *string `json:"breakFrom,omitempty"`
	BreakTo   *string `json:"breakTo,omitempty"`
}

// OverrideItem переопределение расписания на конкретную дату.
// Все временные поля nil = закрыто весь день. Частично заданные поля
// замещают только соответствующие поля недельного расписания.
type OverrideItem struct {
	Date      string  `json:"date"` // "2026-03-08"
	OpenFrom  *string `json:"openFrom,omitempty"`
	OpenTo    *string `json:"openTo,omitempty"`
	BreakFrom *string `json:"breakFrom,omitempty"`
	BreakTo   *string `json:"breakTo,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// ConfigItem параметры сетки слотов компании
type ConfigItem struct {
	StepMinutes             int `json:"stepMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
}

// UpdateScheduleRequest запрос на обновление расписания компании.
// Каждая секция опциональна: присутствующая секция применяется целиком,
// отсутствующая не трогается.
type UpdateScheduleRequest struct {
	WeeklyHours         []WeeklyHoursItem `json:"weeklyHours,omitempty"` // Полная замена недельного расписания
	Overrides           []OverrideItem    `json:"overrides,omitempty"`   // Upsert по датам
	DeleteOverrideDates []string          `json:"deleteOverrideDates,omitempty"`
	Config              *ConfigItem       `json:"config,omitempty"`
}

// Response модели

// ScheduleResponse полное расписание компании
type ScheduleResponse struct {
	CompanyID   int64             `json:"companyId"`
	WeeklyHours []WeeklyHoursItem `json:"weeklyHours"`
	Overrides   []OverrideItem    `json:"overrides"`
	Config      ConfigItem        `json:"config"`
}

// Методы конвертации

// ToDomainWeeklyHours конвертирует DTO в domain модель
func (i *WeeklyHoursItem) ToDomainWeeklyHours(companyID int64) (*domain.WeeklyHours, error) {
	openFrom, err := types.NewTimeStringFromString(i.OpenFrom)
	if err != nil {
		return nil, err
	}
	openTo, err := types.NewTimeStringFromString(i.OpenTo)
	if err != nil {
		return nil, err
	}

	h := &domain.WeeklyHours{
		CompanyID: companyID,
		Weekday:   time.Weekday(i.Weekday),
		OpenFrom:  openFrom,
		OpenTo:    openTo,
	}

	if i.BreakFrom != nil {
		bf, err := types.NewTimeStringFromString(*i.BreakFrom)
		if err != nil {
			return nil, err
		}
		h.BreakFrom = &bf
	}
	if i.BreakTo != nil {
		bt, err := types.NewTimeStringFromString(*i.BreakTo)
		if err != nil {
			return nil, err
		}
		h.BreakTo = &bt
	}

	return h, nil
}

// ToDomainOverride конвертирует DTO в domain модель
func (i *OverrideItem) ToDomainOverride(companyID int64) (*domain.DateOverride, error) {
	date, err := time.Parse(domain.DateFormat, i.Date)
	if err != nil {
		return nil, err
	}

	o := &domain.DateOverride{
		CompanyID: companyID,
		Date:      date,
		Reason:    i.Reason,
	}

	parse := func(s *string) (*types.TimeString, error) {
		if s == nil {
			return nil, nil
		}
		t, err := types.NewTimeStringFromString(*s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}

	if o.OpenFrom, err = parse(i.OpenFrom); err != nil {
		return nil, err
	}
	if o.OpenTo, err = parse(i.OpenTo); err != nil {
		return nil, err
	}
	if o.BreakFrom, err = parse(i.BreakFrom); err != nil {
		return nil, err
	}
	if o.BreakTo, err = parse(i.BreakTo); err != nil {
		return nil, err
	}

	return o, nil
}

// ToDomainConfig конвертирует DTO в domain модель
func (i *ConfigItem) ToDomainConfig(companyID int64) *domain.CompanyScheduleConfig {
	return &domain.CompanyScheduleConfig{
		CompanyID:               companyID,
		StepMinutes:             i.StepMinutes,
		AdvanceBookingDays:      i.AdvanceBookingDays,
		MinBookingNoticeMinutes: i.MinBookingNoticeMinutes,
	}
}

// FromDomainWeeklyHours конвертирует domain модель в DTO
func FromDomainWeeklyHours(h *domain.WeeklyHours) WeeklyHoursItem {
	item := WeeklyHoursItem{
		Weekday:  int(h.Weekday),
		OpenFrom: h.OpenFrom.String(),
		OpenTo:   h.OpenTo.String(),
	}
	if h.BreakFrom != nil {
		s := h.BreakFrom.String()
		item.BreakFrom = &s
	}
	if h.BreakTo != nil {
		s := h.BreakTo.String()
		item.BreakTo = &s
	}
	return item
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.DateOverride) OverrideItem {
	item := OverrideItem{
		Date:   o.Date.Format(domain.DateFormat),
		Reason: o.Reason,
	}

	str := func(t *types.TimeString) *string {
		if t == nil {
			return nil
		}
		s := t.String()
		return &s
	}

	item.OpenFrom = str(o.OpenFrom)
	item.OpenTo = str(o.OpenTo)
	item.BreakFrom = str(o.BreakFrom)
	item.BreakTo = str(o.BreakTo)

	return item
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.CompanyScheduleConfig) ConfigItem {
	return ConfigItem{
		StepMinutes:             c.StepMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
	}
}
