package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	settingsRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/settings"
)

// UseCase use case расчёта доступных слотов и рекомендуемых столов
type UseCase struct {
	tableRepo       TableRepository
	reservationRepo ReservationRepository
	settingsRepo    SettingsRepository
	cache           AvailabilityCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil - тогда доступность считается на каждый запрос
func NewUseCase(
	tableRepo TableRepository,
	reservationRepo ReservationRepository,
	settingsRepo SettingsRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		settingsRepo:    settingsRepo,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case расчёта доступности
// Движок работает с point-in-time снимком данных: гонку между этим чтением и
// параллельной записью закрывает create_reservation своей повторной проверкой в транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: bar=%d, date=%s, party=%d, duration=%d",
		req.BarID, req.Date.Format(domain.DateFormat), req.PartySize, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Длительность по умолчанию
	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultReservationMinutes
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Получаем настройки бара; если бар их ещё не задал - значения по умолчанию
	settings, err := uc.settingsRepo.GetByBar(ctx, req.BarID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailability: failed to get settings for bar=%d: %v", req.BarID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.BarID)
		uc.logger.Info("GetAvailability: using default settings for bar=%d", req.BarID)
	}

	// 5. Структурная валидация настроек - ошибка конфигурации отдаётся сразу
	if err := validateSettings(settings); err != nil {
		uc.logger.Warn("GetAvailability: invalid settings for bar=%d: %v", req.BarID, err)
		return nil, err
	}

	// 6. Пробуем кеш (если подключен)
	if uc.cache != nil {
		if slots, err := uc.cache.Get(ctx, req.BarID, req.Date, req.PartySize, durationMinutes); err == nil {
			uc.logger.Info("GetAvailability: cache hit for bar=%d, date=%s, slots=%d",
				req.BarID, req.Date.Format(domain.DateFormat), len(slots))
			return uc.buildResponse(req, durationMinutes, slots), nil
		}
	}

	// 7. Снимок столов бара
	tables, err := uc.tableRepo.ListByBar(ctx, domain.TablesFilter{BarID: req.BarID})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list tables for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
	}

	// 8. Снимок бронирований на дату (неотменённые)
	filter := domain.BarReservationsFilter{
		BarID:           req.BarID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}
	reservations, err := uc.reservationRepo.GetByBarWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 9. Чистый расчёт по снимку
	slots, err := computeAvailability(tables, reservations, settings, req.Date, req.PartySize, durationMinutes, now)
	if err != nil {
		uc.logger.Warn("GetAvailability: compute failed for bar=%d: %v", req.BarID, err)
		return nil, err
	}

	// 10. Сохраняем в кеш (ошибки кеша не критичны)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, req.BarID, req.Date, req.PartySize, durationMinutes, slots); err != nil {
			uc.logger.Warn("GetAvailability: cache set failed for bar=%d: %v", req.BarID, err)
		}
	}

	uc.logger.Info("GetAvailability: computed %d slots for bar=%d, date=%s, party=%d",
		len(slots), req.BarID, req.Date.Format(domain.DateFormat), req.PartySize)

	return uc.buildResponse(req, durationMinutes, slots), nil
}

func (uc *UseCase) buildResponse(req *Request, durationMinutes int, slots []domain.TimeSlot) *Response {
	return &Response{
		BarID:           req.BarID,
		Date:            req.Date,
		PartySize:       req.PartySize,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}
}
