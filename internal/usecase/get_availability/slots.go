package get_availability

import (
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// computeAvailability чистая функция расчёта доступности
// Для одинаковых снимков входных данных и одинакового now всегда возвращает одинаковый результат
// Пустой список слотов - нормальный итог (закрытый день, дата вне окна, нет подходящих столов),
// ошибка возвращается только при некорректных настройках
func computeAvailability(
	tables []*domain.Table,
	reservations []*domain.Reservation,
	settings *domain.ReservationSettings,
	date time.Time,
	partySize int,
	durationMinutes int,
	now time.Time,
) ([]domain.TimeSlot, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	slots := []domain.TimeSlot{}

	// Компания больше максимальной посадки - нет доступности, но это не ошибка
	if settings.MaxPartySize > 0 && partySize > settings.MaxPartySize {
		return slots, nil
	}

	// Дата вне окна бронирования
	if isDateInPast(date, now) || isDateBeyondLimit(date, now, settings.MaxAdvanceBookingDays) {
		return slots, nil
	}

	// Бар закрыт в этот день недели
	day := settings.OpeningHours.ForWeekday(date.Weekday())
	if day == nil {
		return slots, nil
	}

	// Столы, способные принять компанию; неактивные исключаются полностью
	candidates := make([]*domain.Table, 0, len(tables))
	for _, table := range tables {
		if table.CanSeat(partySize) {
			candidates = append(candidates, table)
		}
	}
	if len(candidates) == 0 {
		return slots, nil
	}

	// Перефильтровываем снимок бронирований: только эта дата и только удерживающие стол
	dayReservations := make([]*domain.Reservation, 0, len(reservations))
	for _, res := range reservations {
		if res.IsActive() && isSameDay(res.ReservationDate, date) {
			dayReservations = append(dayReservations, res)
		}
	}

	// Минимально допустимое время начала для сегодняшней даты
	var minAllowedStart types.TimeString
	if isSameDay(date, now) {
		currentTime := types.NewTimeString(now)
		allowed, err := currentTime.AddMinutes(settings.MinAdvanceBookingMinutes)
		if err != nil {
			// Окно уведомления выходит за полночь - сегодня бронировать уже нельзя
			return slots, nil
		}
		minAllowedStart = allowed
	}

	// Генерируем слоты с шагом slotDuration; слот, чья посадка вышла бы за закрытие, не предлагается
	for start := day.Open; start.IsBefore(day.Close); {
		slotEnd, err := start.AddMinutes(durationMinutes)
		if err != nil || slotEnd.IsAfter(day.Close) {
			break
		}

		if minAllowedStart.IsZero() || !start.IsBefore(minAllowedStart) {
			free := freeTables(candidates, dayReservations, start, slotEnd)

			slot := domain.TimeSlot{
				Time:                 start.String(),
				Datetime:             start.At(date),
				Available:            len(free) > 0,
				AvailableTablesCount: len(free),
			}
			if len(free) > 0 {
				slot.SuggestedTable = pickSuggestedTable(free)
			}
			slots = append(slots, slot)
		}

		next, err := start.AddMinutes(settings.SlotDurationMinutes)
		if err != nil {
			break
		}
		start = next
	}

	return slots, nil
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

// isDateBeyondLimit проверяет, что дата превышает ограничение maxAdvanceBookingDays
func isDateBeyondLimit(date, now time.Time, maxAdvanceDays int) bool {
	if maxAdvanceDays == 0 {
		return false
	}
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxAdvanceDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.After(maxDate)
}
