package create_booking

import (
	"time"

	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64            // ID пользователя
	CompanyID       int64            // ID компании
	Date            time.Time        // Дата бронирования (без времени)
	TimeFrom        types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Длительность услуги в минутах
	ServiceName     string           // Название услуги (денормализуется в бронирование)
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	UserID      int64            // ID пользователя
	CompanyID   int64            // ID компании
	StaffID     int64            // ID автоматически назначенного мастера
	StaffName   string           // Имя назначенного мастера
	BookingDate time.Time        // Дата бронирования
	TimeFrom    types.TimeString // Время начала
	TimeTo      types.TimeString // Время окончания
	Status      string           // Статус бронирования
	ServiceName string           // Название услуги
	Notes       *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
