package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/SLN-BookingService/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func window(from, to string) *Window {
	return &Window{OpenFrom: ts(from), OpenTo: ts(to)}
}

func TestGenerateSlots_FullDayNoBookings(t *testing.T) {
	// Окно 09:00-17:00, без бронирований, длительность 30, шаг 15
	slots := GenerateSlots(window("09:00", "17:00"), BusyIndex{}, []int64{1}, 30, 15)

	require.Len(t, slots, 31)
	assert.Equal(t, ts("09:00"), slots[0])
	assert.Equal(t, ts("16:30"), slots[len(slots)-1])
}

func TestGenerateSlots_GridAndOrdering(t *testing.T) {
	slots := GenerateSlots(window("09:00", "17:00"), BusyIndex{}, []int64{1}, 37, 15)

	openFrom, err := ts("09:00").TotalMinutes()
	require.NoError(t, err)

	lastStart, err := ts("17:00").AddMinutes(-37)
	require.NoError(t, err)

	prev := -1
	for _, s := range slots {
		m, err := s.TotalMinutes()
		require.NoError(t, err)

		// Кандидаты лежат на сетке шага от времени открытия
		assert.Zero(t, (m-openFrom)%15, "slot %s is off the 15-minute grid", s)
		assert.Greater(t, m, prev, "slots must be strictly increasing")
		assert.False(t, s.IsAfter(lastStart), "slot %s starts too late", s)
		prev = m
	}
}

func TestGenerateSlots_BookingBlocksOverlappingCandidates(t *testing.T) {
	// Окно 09:00-10:00, одно бронирование 09:00-09:30, длительность 30:
	// 09:00 занят, 09:15 пересекается (09:15+30 > 09:30), остается только 09:30
	busy := BusyIndex{1: {{From: ts("09:00"), To: ts("09:30")}}}

	slots := GenerateSlots(window("09:00", "10:00"), busy, []int64{1}, 30, 15)

	assert.Equal(t, []types.TimeString{ts("09:30")}, slots)
}

func TestGenerateSlots_FeasibilityIsOrAcrossStaff(t *testing.T) {
	// Мастер 1 занят весь интервал 09:00-12:00, мастер 2 свободен:
	// каждый кандидат достижим через мастера 2
	busy := BusyIndex{1: {{From: ts("09:00"), To: ts("12:00")}}}

	slots := GenerateSlots(window("09:00", "17:00"), busy, []int64{1, 2}, 60, 15)

	require.Len(t, slots, 29) // 09:00 .. 16:00 каждые 15 минут
	assert.Equal(t, ts("09:00"), slots[0])
	assert.Equal(t, ts("16:00"), slots[len(slots)-1])
}

func TestGenerateSlots_DurationExceedsWindow(t *testing.T) {
	slots := GenerateSlots(window("09:00", "10:00"), BusyIndex{}, []int64{1}, 120, 15)

	assert.Empty(t, slots)
}

func TestGenerateSlots_ExactFitWindow(t *testing.T) {
	// Длительность равна окну: единственный слот в момент открытия
	slots := GenerateSlots(window("09:00", "10:00"), BusyIndex{}, []int64{1}, 60, 15)

	assert.Equal(t, []types.TimeString{ts("09:00")}, slots)
}

func TestGenerateSlots_TouchingBookingDoesNotBlock(t *testing.T) {
	// Бронирование заканчивается ровно в 10:00 - слот с 10:00 доступен
	busy := BusyIndex{1: {{From: ts("09:00"), To: ts("10:00")}}}

	slots := GenerateSlots(window("09:00", "11:00"), busy, []int64{1}, 60, 15)

	assert.Equal(t, []types.TimeString{ts("10:00")}, slots)
}

func TestGenerateSlots_NilWindowMeansClosed(t *testing.T) {
	slots := GenerateSlots(nil, BusyIndex{}, []int64{1}, 30, 15)

	assert.Empty(t, slots)
}

func TestGenerateSlots_EmptyRosterMeansNoSlots(t *testing.T) {
	slots := GenerateSlots(window("09:00", "17:00"), BusyIndex{}, nil, 30, 15)

	assert.Empty(t, slots)
}

func TestGenerateSlots_BreakIsCompanyWideBlackout(t *testing.T) {
	w := window("09:00", "17:00")
	w.BreakFrom = ptrTS("12:00")
	w.BreakTo = ptrTS("13:00")

	slots := GenerateSlots(w, BusyIndex{}, []int64{1, 2}, 60, 60)

	// 12:00 выпадает для всех мастеров; 11:00+60 касается перерыва и допустим
	assert.Equal(t, []types.TimeString{
		ts("09:00"), ts("10:00"), ts("11:00"), ts("13:00"), ts("14:00"), ts("15:00"), ts("16:00"),
	}, slots)
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	busy := BusyIndex{1: {{From: ts("10:00"), To: ts("11:00")}}}
	w := window("09:00", "17:00")
	w.BreakFrom = ptrTS("13:00")
	w.BreakTo = ptrTS("14:00")
	staff := []int64{1, 2}

	first := GenerateSlots(w, busy, staff, 45, 15)
	second := GenerateSlots(w, busy, staff, 45, 15)

	assert.Equal(t, first, second)
	// Исходный индекс не мутируется наложением перерыва
	assert.Len(t, busy[1], 1)
}

func TestCountFreeStaff(t *testing.T) {
	busy := BusyIndex{
		1: {{From: ts("10:00"), To: ts("11:00")}},
		2: {{From: ts("14:00"), To: ts("15:00")}},
	}

	free := CountFreeStaff(window("09:00", "17:00"), busy, []int64{1, 2, 3}, ts("10:30"), ts("11:30"))

	assert.Equal(t, 2, free) // мастер 1 занят, мастера 2 и 3 свободны
}

func TestAnySlotWithin(t *testing.T) {
	slots := []types.TimeString{ts("09:00"), ts("14:00"), ts("16:30")}

	assert.True(t, AnySlotWithin(slots, nil, ts("00:00")))
	assert.True(t, AnySlotWithin(slots, ptrTS("14:00"), ts("16:00")))  // from включительно
	assert.False(t, AnySlotWithin(slots, ptrTS("14:30"), ts("16:30"))) // to эксклюзивно
	assert.False(t, AnySlotWithin(nil, nil, ts("00:00")))
}

func ptrTS(s string) *types.TimeString {
	v := ts(s)
	return &v
}
