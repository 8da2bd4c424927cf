package get_availability

import (
	"fmt"

	"github.com/matchtag/MT-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarID <= 0 {
		return fmt.Errorf("%w: barID must be positive", ErrInvalidInput)
	}

	if req.PartySize <= 0 {
		return fmt.Errorf("%w: partySize must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateSettings проверяет структуру настроек, которую движок потребляет напрямую
// Некорректная конфигурация - ошибка, а не пустой результат:
// молча построенное неверное расписание хуже явного отказа
func validateSettings(settings *domain.ReservationSettings) error {
	if settings.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", ErrInvalidSettings)
	}

	for name, day := range settings.OpeningHours.Days() {
		if day == nil {
			continue
		}
		if err := day.Open.Validate(); err != nil {
			return fmt.Errorf("%w: %s open time: %v", ErrInvalidSettings, name, err)
		}
		if err := day.Close.Validate(); err != nil {
			return fmt.Errorf("%w: %s close time: %v", ErrInvalidSettings, name, err)
		}
		if !day.Open.IsBefore(day.Close) {
			return fmt.Errorf("%w: %s opens at %s but closes at %s", ErrInvalidSettings, name, day.Open, day.Close)
		}
	}

	return nil
}
