package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInvalidSettings возвращается при некорректной конфигурации бара
	// (открытие не раньше закрытия, неположительная длительность слота)
	// Повтор с той же конфигурацией воспроизведёт ошибку, поэтому не ретраится
	ErrInvalidSettings = errors.New("get_availability: invalid reservation settings")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
