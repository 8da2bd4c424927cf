package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes      = 30
	DefaultReservationMinutes       = 120 // duration when the query does not specify one
	DefaultMinAdvanceBookingMinutes = 60  // 1 hour
	DefaultMaxAdvanceBookingDays    = 30
	DefaultMaxPartySize             = 12
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours

	MinPartySize             = 1
	MaxPartySizeLimit        = 100
	MaxAdvanceBookingDaysCap = 365 // 1 year

	MinTableCapacity = 1
	MaxTableCapacity = 50

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxGuestNameLength          = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не удерживающих стол
// Используется для фильтрации при расчёте доступности
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, удерживающих стол
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}
