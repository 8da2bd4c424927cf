package models

import (
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// Request модели

// DayHoursDTO расписание работы на один день недели
type DayHoursDTO struct {
	Open  string `json:"open"`  // "12:00"
	Close string `json:"close"` // "23:00"
}

// OpeningHoursDTO недельное расписание; отсутствующий день - бар закрыт
type OpeningHoursDTO struct {
	Monday    *DayHoursDTO `json:"monday,omitempty"`
	Tuesday   *DayHoursDTO `json:"tuesday,omitempty"`
	Wednesday *DayHoursDTO `json:"wednesday,omitempty"`
	Thursday  *DayHoursDTO `json:"thursday,omitempty"`
	Friday    *DayHoursDTO `json:"friday,omitempty"`
	Saturday  *DayHoursDTO `json:"saturday,omitempty"`
	Sunday    *DayHoursDTO `json:"sunday,omitempty"`
}

// UpdateSettingsRequest запрос на обновление настроек бронирования бара
type UpdateSettingsRequest struct {
	UserID int64 `json:"-"`
	Staff  bool  `json:"-"`
	BarID  int64 `json:"-"`

	OpeningHours             OpeningHoursDTO `json:"openingHours"`
	SlotDurationMinutes      int             `json:"slotDurationMinutes"`
	MinAdvanceBookingMinutes int             `json:"minAdvanceBookingMinutes"`
	MaxAdvanceBookingDays    int             `json:"maxAdvanceBookingDays"`
	MaxPartySize             int             `json:"maxPartySize"`
}

// ToDomainSettings конвертирует request в domain модель
func (r *UpdateSettingsRequest) ToDomainSettings() *domain.ReservationSettings {
	return &domain.ReservationSettings{
		BarID:                    r.BarID,
		OpeningHours:             toDomainOpeningHours(r.OpeningHours),
		SlotDurationMinutes:      r.SlotDurationMinutes,
		MinAdvanceBookingMinutes: r.MinAdvanceBookingMinutes,
		MaxAdvanceBookingDays:    r.MaxAdvanceBookingDays,
		MaxPartySize:             r.MaxPartySize,
	}
}

// Response модели

// SettingsResponse ответ с настройками бронирования бара
type SettingsResponse struct {
	BarID int64 `json:"barId"`

	OpeningHours             OpeningHoursDTO `json:"openingHours"`
	SlotDurationMinutes      int             `json:"slotDurationMinutes"`
	MinAdvanceBookingMinutes int             `json:"minAdvanceBookingMinutes"`
	MaxAdvanceBookingDays    int             `json:"maxAdvanceBookingDays"`
	MaxPartySize             int             `json:"maxPartySize"`

	// Default = true, если бар ещё не настроил бронирования
	Default bool `json:"default,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ReservationSettings, isDefault bool) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		BarID:                    s.BarID,
		OpeningHours:             fromDomainOpeningHours(s.OpeningHours),
		SlotDurationMinutes:      s.SlotDurationMinutes,
		MinAdvanceBookingMinutes: s.MinAdvanceBookingMinutes,
		MaxAdvanceBookingDays:    s.MaxAdvanceBookingDays,
		MaxPartySize:             s.MaxPartySize,
		Default:                  isDefault,
	}

	if !isDefault {
		createdAt := s.CreatedAt
		updatedAt := s.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

func toDomainOpeningHours(dto OpeningHoursDTO) domain.OpeningHours {
	return domain.OpeningHours{
		Monday:    toDomainDayHours(dto.Monday),
		Tuesday:   toDomainDayHours(dto.Tuesday),
		Wednesday: toDomainDayHours(dto.Wednesday),
		Thursday:  toDomainDayHours(dto.Thursday),
		Friday:    toDomainDayHours(dto.Friday),
		Saturday:  toDomainDayHours(dto.Saturday),
		Sunday:    toDomainDayHours(dto.Sunday),
	}
}

func toDomainDayHours(dto *DayHoursDTO) *domain.DayHours {
	if dto == nil {
		return nil
	}
	return &domain.DayHours{
		Open:  types.TimeString(dto.Open),
		Close: types.TimeString(dto.Close),
	}
}

func fromDomainOpeningHours(hours domain.OpeningHours) OpeningHoursDTO {
	return OpeningHoursDTO{
		Monday:    fromDomainDayHours(hours.Monday),
		Tuesday:   fromDomainDayHours(hours.Tuesday),
		Wednesday: fromDomainDayHours(hours.Wednesday),
		Thursday:  fromDomainDayHours(hours.Thursday),
		Friday:    fromDomainDayHours(hours.Friday),
		Saturday:  fromDomainDayHours(hours.Saturday),
		Sunday:    fromDomainDayHours(hours.Sunday),
	}
}

func fromDomainDayHours(day *domain.DayHours) *DayHoursDTO {
	if day == nil {
		return nil
	}
	return &DayHoursDTO{
		Open:  day.Open.String(),
		Close: day.Close.String(),
	}
}
