package models

import (
	"errors"
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64  `json:"userId"`
	Staff              bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Staff  bool   `json:"-"`
	Status string `json:"status"`
}

// GetGuestReservationsRequest запрос на получение бронирований гостя
type GetGuestReservationsRequest struct {
	GuestID int64   `json:"guestId"`
	Status  *string `json:"status,omitempty"`
}

// GetBarReservationsRequest запрос на получение бронирований бара
type GetBarReservationsRequest struct {
	UserID          int64      `json:"userId"`
	Staff           bool       `json:"-"`
	BarID           int64      `json:"barId"`
	TableID         *int64     `json:"tableId,omitempty"`         // Фильтр по столу (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBarReservationsRequest) ToDomainFilter() (domain.BarReservationsFilter, error) {
	filter := domain.BarReservationsFilter{
		BarID:           r.BarID,
		TableID:         r.TableID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64  `json:"id"`
	BarID           int64  `json:"barId"`
	GuestID         int64  `json:"guestId"`
	GuestName       string `json:"guestName"`
	PartySize       int    `json:"partySize"`
	ReservationDate string `json:"reservationDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`       // "19:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные стола
	TableID       *int64  `json:"tableId,omitempty"`
	TableNumber   *int    `json:"tableNumber,omitempty"`
	TableCapacity *int    `json:"tableCapacity,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		BarID:              r.BarID,
		GuestID:            r.GuestID,
		GuestName:          r.GuestName,
		PartySize:          r.PartySize,
		ReservationDate:    r.ReservationDate.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		TableID:            r.TableID,
		TableNumber:        r.TableNumber,
		TableCapacity:      r.TableCapacity,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if reservationResp := FromDomainReservation(reservation); reservationResp != nil {
			resp.Reservations[i] = *reservationResp
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	// Валидируем статус
	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
