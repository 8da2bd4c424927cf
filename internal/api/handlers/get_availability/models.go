package get_availability

import (
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	getAvailability "github.com/matchtag/MT-ReservationService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BarID           int64      `json:"barId"`
	Date            string     `json:"date"`
	PartySize       int        `json:"partySize"`
	DurationMinutes int        `json:"durationMinutes"`
	Slots           []TimeSlot `json:"slots"`
}

// TimeSlot модель временного слота
type TimeSlot struct {
	Time                 string          `json:"time"`     // "19:00"
	Datetime             string          `json:"datetime"` // RFC3339
	Available            bool            `json:"available"`
	AvailableTablesCount int             `json:"availableTablesCount"`
	SuggestedTable       *SuggestedTable `json:"suggestedTable,omitempty"`
}

// SuggestedTable рекомендуемый стол для слота
type SuggestedTable struct {
	ID       int64 `json:"id"`
	Number   int   `json:"number"`
	Capacity int   `json:"capacity"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]TimeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeSlot{
			Time:                 slot.Time,
			Datetime:             slot.Datetime.Format(time.RFC3339),
			Available:            slot.Available,
			AvailableTablesCount: slot.AvailableTablesCount,
		}
		if slot.SuggestedTable != nil {
			slots[i].SuggestedTable = &SuggestedTable{
				ID:       slot.SuggestedTable.ID,
				Number:   slot.SuggestedTable.Number,
				Capacity: slot.SuggestedTable.Capacity,
			}
		}
	}

	return &AvailabilityResponse{
		BarID:           resp.BarID,
		Date:            resp.Date.Format(domain.DateFormat),
		PartySize:       resp.PartySize,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(barID int64, dateStr string, partySize, durationMinutes int) (*getAvailability.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		BarID:           barID,
		Date:            date,
		PartySize:       partySize,
		DurationMinutes: durationMinutes,
	}, nil
}
