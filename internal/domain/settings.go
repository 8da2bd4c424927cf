package domain

import (
	"time"

	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// DayHours operating window of a single weekday, half-open [Open, Close)
type DayHours struct {
	Open  types.TimeString `json:"open"`
	Close types.TimeString `json:"close"`
}

// OpeningHours weekly schedule; a nil day means the bar is closed
type OpeningHours struct {
	Monday    *DayHours `json:"monday,omitempty"`
	Tuesday   *DayHours `json:"tuesday,omitempty"`
	Wednesday *DayHours `json:"wednesday,omitempty"`
	Thursday  *DayHours `json:"thursday,omitempty"`
	Friday    *DayHours `json:"friday,omitempty"`
	Saturday  *DayHours `json:"saturday,omitempty"`
	Sunday    *DayHours `json:"sunday,omitempty"`
}

// ForWeekday returns the operating window for the given weekday, nil if closed
func (h OpeningHours) ForWeekday(weekday time.Weekday) *DayHours {
	switch weekday {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	case time.Sunday:
		return h.Sunday
	default:
		return nil
	}
}

// Days returns all configured day windows for iteration
func (h OpeningHours) Days() map[string]*DayHours {
	return map[string]*DayHours{
		"monday":    h.Monday,
		"tuesday":   h.Tuesday,
		"wednesday": h.Wednesday,
		"thursday":  h.Thursday,
		"friday":    h.Friday,
		"saturday":  h.Saturday,
		"sunday":    h.Sunday,
	}
}

// ReservationSettings represents the reservation configuration of a bar
type ReservationSettings struct {
	ID    int64
	BarID int64

	OpeningHours             OpeningHours
	SlotDurationMinutes      int
	MinAdvanceBookingMinutes int
	MaxAdvanceBookingDays    int // 0 = unlimited
	MaxPartySize             int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *ReservationSettings) HasAdvanceBookingLimit() bool {
	return s.MaxAdvanceBookingDays > 0
}

// DefaultSettings возвращает настройки бара по умолчанию
// Используется, когда бар ещё не настроил бронирования
func DefaultSettings(barID int64) *ReservationSettings {
	return &ReservationSettings{
		BarID:                    barID,
		OpeningHours:             OpeningHours{},
		SlotDurationMinutes:      DefaultSlotDurationMinutes,
		MinAdvanceBookingMinutes: DefaultMinAdvanceBookingMinutes,
		MaxAdvanceBookingDays:    DefaultMaxAdvanceBookingDays,
		MaxPartySize:             DefaultMaxPartySize,
	}
}
