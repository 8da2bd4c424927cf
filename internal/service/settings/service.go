package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	settingsRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/settings"
	"github.com/matchtag/MT-ReservationService/internal/service/settings/models"
)

// Service сервис для работы с настройками бронирования
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetByBar получает настройки бронирования бара
// Если бар ещё не настроил бронирования, возвращаются настройки по умолчанию
func (s *Service) GetByBar(ctx context.Context, barID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetByBar: fetching settings for bar=%d", barID)

	if barID <= 0 {
		return nil, fmt.Errorf("%w: barID must be positive", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.GetByBar(ctx, barID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("GetByBar: bar=%d has no settings, returning defaults", barID)
			return models.FromDomainSettings(domain.DefaultSettings(barID), true), nil
		}
		s.logger.Error("GetByBar: repository error for bar=%d: %v", barID, err)
		return nil, fmt.Errorf("%w: GetByBar - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByBar: successfully fetched settings for bar=%d", barID)
	return models.FromDomainSettings(settings, false), nil
}

// Upsert создает или обновляет настройки бронирования бара
// Доступно только персоналу бара
func (s *Service) Upsert(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Upsert: updating settings for bar=%d by user=%d", req.BarID, req.UserID)

	// Проверяем права доступа
	if !req.Staff {
		s.logger.Warn("Upsert: access denied for user=%d to bar=%d", req.UserID, req.BarID)
		return nil, ErrAccessDenied
	}

	// Валидируем настройки
	domainSettings := req.ToDomainSettings()
	if err := validateSettings(domainSettings); err != nil {
		s.logger.Warn("Upsert: validation failed for bar=%d: %v", req.BarID, err)
		return nil, err
	}

	updated, err := s.settingsRepo.Upsert(ctx, domainSettings)
	if err != nil {
		s.logger.Error("Upsert: repository error for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully updated settings for bar=%d", req.BarID)
	return models.FromDomainSettings(updated, false), nil
}

// Delete удаляет настройки бара, возвращая его к настройкам по умолчанию
// Доступно только персоналу бара
func (s *Service) Delete(ctx context.Context, barID int64, userID int64, staff bool) error {
	s.logger.Info("Delete: deleting settings for bar=%d by user=%d", barID, userID)

	if !staff {
		s.logger.Warn("Delete: access denied for user=%d to bar=%d", userID, barID)
		return ErrAccessDenied
	}

	if err := s.settingsRepo.Delete(ctx, barID); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Delete: settings for bar=%d not found", barID)
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error for bar=%d: %v", barID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted settings for bar=%d", barID)
	return nil
}

// validateSettings проверяет бизнес-ограничения настроек бронирования
// Записи с некорректным расписанием блокируются на входе:
// движок доступности считает их ошибкой конфигурации
func validateSettings(s *domain.ReservationSettings) error {
	if s.BarID <= 0 {
		return fmt.Errorf("%w: barID must be positive", ErrInvalidInput)
	}

	if s.SlotDurationMinutes < domain.MinSlotDurationMinutes || s.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if s.MinAdvanceBookingMinutes < 0 {
		return fmt.Errorf("%w: minAdvanceBookingMinutes must not be negative", ErrInvalidInput)
	}

	if s.MaxAdvanceBookingDays < 0 || s.MaxAdvanceBookingDays > domain.MaxAdvanceBookingDaysCap {
		return fmt.Errorf("%w: maxAdvanceBookingDays must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDaysCap)
	}

	if s.MaxPartySize < domain.MinPartySize || s.MaxPartySize > domain.MaxPartySizeLimit {
		return fmt.Errorf("%w: maxPartySize must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySizeLimit)
	}

	for name, day := range s.OpeningHours.Days() {
		if day == nil {
			continue
		}
		if err := day.Open.Validate(); err != nil {
			return fmt.Errorf("%w: %s open time: %v", ErrInvalidInput, name, err)
		}
		if err := day.Close.Validate(); err != nil {
			return fmt.Errorf("%w: %s close time: %v", ErrInvalidInput, name, err)
		}
		if !day.Open.IsBefore(day.Close) {
			return fmt.Errorf("%w: %s opens at %s but closes at %s", ErrInvalidInput, name, day.Open, day.Close)
		}
		// Рабочее окно должно делиться на длительность слота без остатка,
		// иначе сетка слотов обрывается до закрытия
		window := day.Close.Minutes() - day.Open.Minutes()
		if window%s.SlotDurationMinutes != 0 {
			return fmt.Errorf("%w: %s window of %d minutes is not divisible by slot duration %d",
				ErrInvalidInput, name, window, s.SlotDurationMinutes)
		}
	}

	return nil
}
