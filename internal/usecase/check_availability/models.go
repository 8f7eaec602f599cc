package check_availability

import (
	"time"

	"github.com/salonhub/SLN-BookingService/pkg/types"
)

// DefaultDesiredWindowMinutes длина желаемого окна по умолчанию,
// когда указано только его начало
const DefaultDesiredWindowMinutes = 120

// Request модель запроса на проверку доступности.
// Используется поисковой выдачей для фильтрации сразу нескольких компаний,
// поэтому принимает список companyIds.
type Request struct {
	CompanyIDs      []int64           // ID компаний (допускаются дубликаты - считаются один раз)
	Date            time.Time         // Дата проверки
	DurationMinutes int               // Длительность запрашиваемой услуги
	DesiredFrom     *types.TimeString // Начало желаемого окна (опционально)
	DesiredTo       *types.TimeString // Конец желаемого окна (опционально, по умолчанию DesiredFrom + 120 минут)
}

// Response модель ответа с доступностью по компаниям
type Response struct {
	Date            time.Time             // Дата проверки
	DurationMinutes int                   // Длительность услуги
	Results         []CompanyAvailability // В порядке запрошенных компаний (без дубликатов)
}

// CompanyAvailability доступность одной компании
type CompanyAvailability struct {
	CompanyID int64
	Available bool
}
