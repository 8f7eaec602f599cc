package get_available_slots

import (
	"time"

	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	CompanyID       int64     // ID компании
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность запрашиваемой услуги
}

// Response модель ответа со списком доступных слотов
type Response struct {
	CompanyID       int64     // ID компании
	Date            time.Time // Дата, на которую запрашивались слоты
	DurationMinutes int       // Длительность услуги
	StepMinutes     int       // Шаг сетки слотов (из конфигурации компании)
	Slots           []Slot    // Доступные слоты по возрастанию времени
}

// Slot модель временного слота
type Slot struct {
	StartTime  types.TimeString // Время начала слота (например, "10:00")
	FreeStaff  int              // Количество свободных мастеров на весь интервал
	TotalStaff int              // Общее количество доступных для записи мастеров
}
