package schedule

import "errors"

var (
	// ErrWeeklyHoursNotFound возвращается, когда у компании нет расписания на день недели
	ErrWeeklyHoursNotFound = errors.New("schedule.repository: weekly hours not found")

	// ErrOverrideNotFound возвращается, когда на дату нет переопределения
	ErrOverrideNotFound = errors.New("schedule.repository: date override not found")

	// ErrConfigNotFound возвращается, когда конфигурация расписания не найдена
	ErrConfigNotFound = errors.New("schedule.repository: schedule config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
