package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SLN-BookingService/internal/domain"
)

func weeklyRow(from, to string) *domain.WeeklyHours {
	return &domain.WeeklyHours{
		CompanyID: 1,
		Weekday:   time.Thursday,
		OpenFrom:  ts(from),
		OpenTo:    ts(to),
	}
}

func TestResolveWindow_WeeklyOnly(t *testing.T) {
	w := ResolveWindow(weeklyRow("09:00", "17:00"), nil)

	require.NotNil(t, w)
	assert.Equal(t, ts("09:00"), w.OpenFrom)
	assert.Equal(t, ts("17:00"), w.OpenTo)
	assert.False(t, w.HasBreak())
}

func TestResolveWindow_NoRowsMeansClosed(t *testing.T) {
	assert.Nil(t, ResolveWindow(nil, nil))
}

func TestResolveWindow_OverrideClosedAllDay(t *testing.T) {
	// Праздничный день: строка переопределения без времени при заполненном
	// недельном расписании означает "закрыто весь день"
	override := &domain.DateOverride{CompanyID: 1}

	assert.Nil(t, ResolveWindow(weeklyRow("09:00", "17:00"), override))
}

func TestResolveWindow_OverrideReplacesWeekly(t *testing.T) {
	override := &domain.DateOverride{
		OpenFrom: ptrTS("11:00"),
		OpenTo:   ptrTS("15:00"),
	}

	w := ResolveWindow(weeklyRow("09:00", "17:00"), override)

	require.NotNil(t, w)
	assert.Equal(t, ts("11:00"), w.OpenFrom)
	assert.Equal(t, ts("15:00"), w.OpenTo)
}

func TestResolveWindow_PartialOverrideFallsBackPerField(t *testing.T) {
	// Переопределено только открытие - закрытие берется из недельного расписания
	override := &domain.DateOverride{OpenFrom: ptrTS("11:00")}

	w := ResolveWindow(weeklyRow("09:00", "17:00"), override)

	require.NotNil(t, w)
	assert.Equal(t, ts("11:00"), w.OpenFrom)
	assert.Equal(t, ts("17:00"), w.OpenTo)
}

func TestResolveWindow_PartialOverrideWithoutWeeklyMeansClosed(t *testing.T) {
	override := &domain.DateOverride{OpenFrom: ptrTS("11:00")}

	assert.Nil(t, ResolveWindow(nil, override))
}

func TestResolveWindow_OverrideBreakWinsOverWeeklyBreak(t *testing.T) {
	weekly := weeklyRow("09:00", "17:00")
	weekly.BreakFrom = ptrTS("12:00")
	weekly.BreakTo = ptrTS("13:00")

	override := &domain.DateOverride{
		OpenFrom:  ptrTS("10:00"),
		OpenTo:    ptrTS("18:00"),
		BreakFrom: ptrTS("14:00"),
		BreakTo:   ptrTS("15:00"),
	}

	w := ResolveWindow(weekly, override)

	require.NotNil(t, w)
	require.True(t, w.HasBreak())
	assert.Equal(t, ts("14:00"), *w.BreakFrom)
	assert.Equal(t, ts("15:00"), *w.BreakTo)
}

func TestResolveWindow_WeeklyBreakKeptWhenOverrideHasNone(t *testing.T) {
	weekly := weeklyRow("09:00", "17:00")
	weekly.BreakFrom = ptrTS("12:00")
	weekly.BreakTo = ptrTS("13:00")

	override := &domain.DateOverride{OpenFrom: ptrTS("10:00"), OpenTo: ptrTS("18:00")}

	w := ResolveWindow(weekly, override)

	require.NotNil(t, w)
	require.True(t, w.HasBreak())
	assert.Equal(t, ts("12:00"), *w.BreakFrom)
}

func TestResolveWindow_InvertedWindowMeansClosed(t *testing.T) {
	assert.Nil(t, ResolveWindow(weeklyRow("17:00", "09:00"), nil))
}
