package create_reservation

import (
	"fmt"
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.GuestID <= 0 {
		return fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
	}

	if req.BarID <= 0 {
		return fmt.Errorf("%w: barID must be positive", ErrInvalidInput)
	}

	if req.TableID != nil && *req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}

	if req.GuestName == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
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

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateSettings проверяет конфигурацию бронирования перед использованием
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

// validateDate проверяет, что дата подходит для бронирования
func validateDate(reservationDate time.Time, now time.Time, maxAdvanceDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(reservationDate, now) {
		return ErrInvalidDate
	}

	// Если maxAdvanceDays = 0, нет ограничений на дату
	if maxAdvanceDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение maxAdvanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxAdvanceDays)

	dateOnly := time.Date(reservationDate.Year(), reservationDate.Month(), reservationDate.Day(), 0, 0, 0, 0, reservationDate.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateTimeSlot проверяет, что время начала лежит на сетке слотов
// и посадка целиком помещается в рабочие часы
func validateTimeSlot(startTime types.TimeString, durationMinutes int, day *domain.DayHours, slotDuration int) error {
	if startTime.IsBefore(day.Open) {
		return fmt.Errorf("%w: bar opens at %s", ErrInvalidTimeSlot, day.Open)
	}

	// Начало должно совпадать с одним из слотов сетки
	offset := startTime.Minutes() - day.Open.Minutes()
	if offset%slotDuration != 0 {
		return fmt.Errorf("%w: startTime must be aligned to %d-minute slots from %s", ErrInvalidTimeSlot, slotDuration, day.Open)
	}

	// Посадка не должна выходить за время закрытия
	endTime, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: reservation extends past midnight", ErrInvalidTimeSlot)
	}
	if endTime.IsAfter(day.Close) {
		return fmt.Errorf("%w: reservation would end at %s, after closing at %s", ErrInvalidTimeSlot, endTime, day.Close)
	}

	return nil
}

// validateNotice проверяет, что бронирование не нарушает minAdvanceBookingMinutes
func validateNotice(
	reservationDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minAdvanceMinutes int,
) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(reservationDate, now) {
		return nil
	}

	// Вычисляем минимальное допустимое время
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minAdvanceMinutes)
	if err != nil {
		// Окно уведомления выходит за полночь - сегодня бронировать уже нельзя
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minAdvanceMinutes)
	}

	// Проверяем, что время начала не раньше минимального
	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minAdvanceMinutes)
	}

	return nil
}

// freeTables возвращает столы-кандидаты без пересекающихся бронирований на [slotStart, slotEnd)
// Бронирования без назначенного стола место не удерживают
func freeTables(
	candidates []*domain.Table,
	reservations []*domain.Reservation,
	slotStart, slotEnd types.TimeString,
) []*domain.Table {
	free := make([]*domain.Table, 0, len(candidates))

	for _, table := range candidates {
		busy := false
		for _, res := range reservations {
			if !res.IsActive() {
				continue
			}
			if res.TableID == nil || *res.TableID != table.ID {
				continue
			}
			if res.Overlaps(slotStart, slotEnd) {
				busy = true
				break
			}
		}
		if !busy {
			free = append(free, table)
		}
	}

	return free
}

// pickSuggestedTable выбирает стол с минимальной достаточной вместимостью
// При равной вместимости - стол с меньшим номером, чтобы результат был детерминированным
func pickSuggestedTable(free []*domain.Table) *domain.Table {
	best := free[0]
	for _, table := range free[1:] {
		if table.Capacity < best.Capacity ||
			(table.Capacity == best.Capacity && table.Number < best.Number) {
			best = table
		}
	}
	return best
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
