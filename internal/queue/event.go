package queue

// ReservationCreatedEvent публикуется после успешного создания бронирования
// Содержит достаточно данных, чтобы консьюмеры (уведомления, CRM, аналитика)
// не ходили за ними в основную БД
type ReservationCreatedEvent struct {
	ReservationID   int64  `json:"reservation_id"`
	BarID           int64  `json:"bar_id"`
	GuestID         int64  `json:"guest_id"`
	GuestName       string `json:"guest_name"`
	PartySize       int    `json:"party_size"`
	TableID         *int64 `json:"table_id,omitempty"`
	TableNumber     *int   `json:"table_number,omitempty"`
	ReservationDate string `json:"reservation_date"` // YYYY-MM-DD
	StartTime       string `json:"start_time"`       // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"` // RFC3339
}

// ReservationCancelledEvent публикуется после отмены бронирования
type ReservationCancelledEvent struct {
	ReservationID   int64  `json:"reservation_id"`
	BarID           int64  `json:"bar_id"`
	GuestID         int64  `json:"guest_id"`
	TableID         *int64 `json:"table_id,omitempty"`
	ReservationDate string `json:"reservation_date"` // YYYY-MM-DD
	StartTime       string `json:"start_time"`       // HH:MM
	Reason          string `json:"reason"`
	CancelledAt     string `json:"cancelled_at"` // RFC3339
}
