package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	settingsRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/settings"
	"github.com/matchtag/MT-ReservationService/internal/queue"
	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	settingsRepo    SettingsRepository
	txManager       TransactionManager
	publisher       EventPublisher
	cache           CacheInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// publisher и cache могут быть nil - тогда события и инвалидация кеша пропускаются
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	cache CacheInvalidator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		settingsRepo:    settingsRepo,
		txManager:       txManager,
		publisher:       publisher,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// между расчётом доступности и записью слот мог занять другой гость,
// поэтому снимок бронирований перечитывается под блокировкой перед вставкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: guest=%d, bar=%d, date=%s, time=%s, party=%d",
		req.GuestID, req.BarID, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Длительность по умолчанию
	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultReservationMinutes
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Reservation

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем настройки бронирования бара
		settings, err := uc.settingsRepo.GetByBar(txCtx, req.BarID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateReservation: failed to get settings for bar=%d: %v", req.BarID, err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			// Настройки не заданы - используем дефолтные
			settings = domain.DefaultSettings(req.BarID)
			uc.logger.Info("CreateReservation: using default settings for bar=%d", req.BarID)
		}

		if err := validateSettings(settings); err != nil {
			uc.logger.Warn("CreateReservation: bar=%d has invalid settings: %v", req.BarID, err)
			return err
		}

		// 4.2. Проверяем размер компании
		if settings.MaxPartySize > 0 && req.PartySize > settings.MaxPartySize {
			uc.logger.Warn("CreateReservation: party size %d exceeds limit %d", req.PartySize, settings.MaxPartySize)
			return fmt.Errorf("%w: maximum party size is %d", ErrPartyTooLarge, settings.MaxPartySize)
		}

		// 4.3. Валидация даты с учетом окна бронирования
		if err := validateDate(req.Date, now, settings.MaxAdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateReservation: date validation failed: %v", err)
			return err
		}

		// 4.4. Получаем рабочие часы на указанную дату
		day := settings.OpeningHours.ForWeekday(req.Date.Weekday())
		if day == nil {
			uc.logger.Warn("CreateReservation: bar=%d is closed on %s", req.BarID, req.Date.Format(domain.DateFormat))
			return ErrBarClosed
		}

		// 4.5. Время начала должно лежать на сетке слотов и помещаться до закрытия
		if err := validateTimeSlot(req.StartTime, durationMinutes, day, settings.SlotDurationMinutes); err != nil {
			uc.logger.Warn("CreateReservation: time slot validation failed: %v", err)
			return err
		}

		// 4.6. Проверка минимального уведомления (minAdvanceBookingMinutes)
		if err := validateNotice(req.Date, req.StartTime, now, settings.MinAdvanceBookingMinutes); err != nil {
			uc.logger.Warn("CreateReservation: notice validation failed: %v", err)
			return err
		}

		// 4.7. Получаем активные столы бара
		tables, err := uc.tableRepo.ListByBar(txCtx, domain.TablesFilter{
			BarID:      req.BarID,
			ActiveOnly: true,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list tables: %v", err)
			return fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
		}

		// 4.8. Перечитываем бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.BarReservationsFilter{
			BarID:           req.BarID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		reservations, err := uc.reservationRepo.GetByBarWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		slotEnd, err := req.StartTime.AddMinutes(durationMinutes)
		if err != nil {
			return fmt.Errorf("%w: reservation extends past midnight", ErrInvalidTimeSlot)
		}

		// 4.9. Выбираем стол: запрошенный гостем или подобранный автоматически
		var table *domain.Table
		if req.TableID != nil {
			table, err = uc.resolveRequestedTable(tables, reservations, *req.TableID, req.PartySize, req.StartTime, slotEnd)
		} else {
			table, err = uc.assignTable(tables, reservations, req.PartySize, req.StartTime, slotEnd)
		}
		if err != nil {
			return err
		}

		uc.logger.Info("CreateReservation: assigned table id=%d number=%d capacity=%d",
			table.ID, table.Number, table.Capacity)

		// 4.10. Создаем бронирование с денормализацией данных стола
		reservation := &domain.Reservation{
			BarID:           req.BarID,
			GuestID:         req.GuestID,
			GuestName:       req.GuestName,
			PartySize:       req.PartySize,
			TableID:         &table.ID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusConfirmed,
			// Денормализация данных стола
			TableNumber:   &table.Number,
			TableCapacity: &table.Capacity,
			// Пожелания гостя
			Notes: req.Notes,
		}

		// 4.11. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 5. Пост-обработка после коммита: сброс кеша и событие
	// Ошибки здесь не откатывают бронирование, только логируются
	uc.invalidateCache(ctx, result.BarID, result.ReservationDate)
	uc.publishCreated(ctx, result)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		BarID:           result.BarID,
		GuestID:         result.GuestID,
		GuestName:       result.GuestName,
		PartySize:       result.PartySize,
		TableID:         result.TableID,
		TableNumber:     result.TableNumber,
		TableCapacity:   result.TableCapacity,
		ReservationDate: result.ReservationDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveRequestedTable проверяет, что запрошенный стол существует, активен,
// вмещает компанию и свободен в указанный слот
func (uc *UseCase) resolveRequestedTable(
	tables []*domain.Table,
	reservations []*domain.Reservation,
	tableID int64,
	partySize int,
	slotStart, slotEnd types.TimeString,
) (*domain.Table, error) {
	var requested *domain.Table
	for _, table := range tables {
		if table.ID == tableID {
			requested = table
			break
		}
	}
	if requested == nil {
		uc.logger.Warn("CreateReservation: table id=%d not found or inactive", tableID)
		return nil, ErrTableNotFound
	}

	if !requested.CanSeat(partySize) {
		uc.logger.Warn("CreateReservation: table id=%d capacity %d cannot seat party of %d",
			requested.ID, requested.Capacity, partySize)
		return nil, fmt.Errorf("%w: table %d seats up to %d guests", ErrNoTableFits, requested.Number, requested.Capacity)
	}

	free := freeTables([]*domain.Table{requested}, reservations, slotStart, slotEnd)
	if len(free) == 0 {
		uc.logger.Warn("CreateReservation: table id=%d is already booked for %s-%s", tableID, slotStart, slotEnd)
		return nil, ErrTableNotAvailable
	}

	return requested, nil
}

// assignTable подбирает свободный стол с минимальной достаточной вместимостью
func (uc *UseCase) assignTable(
	tables []*domain.Table,
	reservations []*domain.Reservation,
	partySize int,
	slotStart, slotEnd types.TimeString,
) (*domain.Table, error) {
	candidates := make([]*domain.Table, 0, len(tables))
	for _, table := range tables {
		if table.CanSeat(partySize) {
			candidates = append(candidates, table)
		}
	}
	if len(candidates) == 0 {
		uc.logger.Warn("CreateReservation: no table fits party of %d", partySize)
		return nil, ErrNoTableFits
	}

	free := freeTables(candidates, reservations, slotStart, slotEnd)
	if len(free) == 0 {
		uc.logger.Warn("CreateReservation: all suitable tables are booked for %s-%s", slotStart, slotEnd)
		return nil, ErrTableNotAvailable
	}

	return pickSuggestedTable(free), nil
}

// invalidateCache сбрасывает кеш доступности бара на дату бронирования
func (uc *UseCase) invalidateCache(ctx context.Context, barID int64, date time.Time) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, barID, date); err != nil {
		uc.logger.Warn("CreateReservation: failed to invalidate availability cache: %v", err)
	}
}

// publishCreated публикует событие о созданном бронировании
func (uc *UseCase) publishCreated(ctx context.Context, res *domain.Reservation) {
	if uc.publisher == nil {
		return
	}

	event := queue.ReservationCreatedEvent{
		ReservationID:   res.ID,
		BarID:           res.BarID,
		GuestID:         res.GuestID,
		GuestName:       res.GuestName,
		PartySize:       res.PartySize,
		TableID:         res.TableID,
		TableNumber:     res.TableNumber,
		ReservationDate: res.ReservationDate.Format(domain.DateFormat),
		StartTime:       res.StartTime.String(),
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		CreatedAt:       res.CreatedAt.UTC().Format(time.RFC3339),
	}

	if err := uc.publisher.PublishReservationCreated(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish created event: %v", err)
	}
}
