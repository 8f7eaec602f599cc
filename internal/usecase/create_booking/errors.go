package create_booking

import "errors"

var (
	// ErrCompanyClosed возвращается, когда компания закрыта в указанную дату
	ErrCompanyClosed = errors.New("create_booking: company is closed on this date")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время вне рабочих часов,
	// не на сетке слотов или пересекается с перерывом
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrNoStaffAvailable возвращается, когда ни один мастер не свободен
	// на запрошенный интервал. Ожидаемый исход: пользователю предлагают
	// выбрать другое время.
	ErrNoStaffAvailable = errors.New("create_booking: no staff available for this time")

	// ErrBookingConflict возвращается, когда запись отклонена конкурентным
	// бронированием (exclusion constraint). В отличие от ErrNoStaffAvailable
	// слот был валиден на момент чтения - вызывающая сторона должна
	// пересчитать слоты и предложить пользователю выбрать заново.
	ErrBookingConflict = errors.New("create_booking: booking conflicts with a concurrent write")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
