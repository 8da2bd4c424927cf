package types

import (
	"errors"
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат операции выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString время в формате "HH:MM" (например, "10:00")
// Хранится как строка, чтобы без преобразований ходить в БД и JSON
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(m int) (TimeString, error) {
	if m < 0 || m >= minutesPerDay {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return ErrInvalidTimeString
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeString, err)
	}
	// time.Parse допускает "9:05", нормализуем обратно для проверки нулей
	if parsed.Format("15:04") != s {
		return ErrInvalidTimeString
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
// Для невалидного значения возвращает 0
func (t TimeString) Minutes() int {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes возвращает время, сдвинутое на m минут вперёд
// Возвращает ошибку при выходе за пределы суток
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	total := t.Minutes() + m
	if total < 0 || total > minutesPerDay {
		return "", ErrTimeOverflow
	}
	// "24:00" используется только как правая граница интервала
	if total == minutesPerDay {
		return TimeString("24:00"), nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.totalMinutes() < other.totalMinutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.totalMinutes() > other.totalMinutes()
}

// At привязывает время к календарной дате
func (t TimeString) At(date time.Time) time.Time {
	m := t.totalMinutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
}

// totalMinutes как Minutes, но понимает граничное значение "24:00"
func (t TimeString) totalMinutes() int {
	if t == "24:00" {
		return minutesPerDay
	}
	return t.Minutes()
}
