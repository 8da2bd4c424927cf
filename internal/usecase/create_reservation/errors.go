package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrBarClosed возвращается, когда бар закрыт в указанную дату
	ErrBarClosed = errors.New("create_reservation: bar is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время начала не попадает в сетку слотов
	// или посадка выходит за время закрытия
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minAdvanceBookingMinutes
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrPartyTooLarge возвращается, когда компания больше maxPartySize бара
	ErrPartyTooLarge = errors.New("create_reservation: party size exceeds bar limit")

	// ErrNoTableFits возвращается, когда ни один активный стол не вмещает компанию
	ErrNoTableFits = errors.New("create_reservation: no table fits this party size")

	// ErrTableNotFound возвращается, когда запрошенный стол не существует или неактивен
	ErrTableNotFound = errors.New("create_reservation: table not found")

	// ErrTableNotAvailable возвращается, когда слот занят между чтением снимка и записью
	ErrTableNotAvailable = errors.New("create_reservation: table is not available for this slot")

	// ErrInvalidSettings возвращается при некорректной конфигурации бара
	ErrInvalidSettings = errors.New("create_reservation: invalid reservation settings")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
