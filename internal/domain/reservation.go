package domain

import (
	"time"

	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusNoShow    ReservationStatus = "no_show"
)

// Reservation represents a table reservation in a bar
type Reservation struct {
	ID        int64
	BarID     int64
	TableID   *int64 // nil until a table is assigned
	GuestID   int64
	GuestName string
	PartySize int

	ReservationDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized table data for history
	TableNumber   *int
	TableCapacity *int

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still holds its table
// Every non-cancelled reservation counts: history rows (completed, no_show)
// keep their interval claim so reporting stays consistent
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// EndTime returns the end of the reservation interval (half-open)
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.DurationMinutes)
}

// Overlaps reports whether the reservation interval intersects [slotStart, slotEnd)
// Touching endpoints do not count as overlap
func (r *Reservation) Overlaps(slotStart, slotEnd types.TimeString) bool {
	end, err := r.EndTime()
	if err != nil {
		return false
	}
	return r.StartTime.IsBefore(slotEnd) && end.IsAfter(slotStart)
}

// BarReservationsFilter фильтр для получения бронирований бара
type BarReservationsFilter struct {
	BarID           int64              // Обязательный параметр
	TableID         *int64             // Фильтр по столу (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли неактивные бронирования (отмененные, no-show)
}
