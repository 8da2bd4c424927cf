package create_reservation

import (
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	createReservation "github.com/matchtag/MT-ReservationService/internal/usecase/create_reservation"
	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	BarID           int64   `json:"barId"`
	TableID         *int64  `json:"tableId,omitempty"` // nil = подобрать стол автоматически
	GuestName       string  `json:"guestName"`
	PartySize       int     `json:"partySize"`
	Date            string  `json:"date"`      // "2026-09-15"
	StartTime       string  `json:"startTime"` // "19:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	BarID           int64   `json:"barId"`
	GuestID         int64   `json:"guestId"`
	GuestName       string  `json:"guestName"`
	PartySize       int     `json:"partySize"`
	TableID         *int64  `json:"tableId,omitempty"`
	TableNumber     *int    `json:"tableNumber,omitempty"`
	TableCapacity   *int    `json:"tableCapacity,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(guestID int64) (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		GuestID:         guestID,
		BarID:           r.BarID,
		TableID:         r.TableID,
		GuestName:       r.GuestName,
		PartySize:       r.PartySize,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		BarID:           resp.BarID,
		GuestID:         resp.GuestID,
		GuestName:       resp.GuestName,
		PartySize:       resp.PartySize,
		TableID:         resp.TableID,
		TableNumber:     resp.TableNumber,
		TableCapacity:   resp.TableCapacity,
		Date:            resp.ReservationDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
