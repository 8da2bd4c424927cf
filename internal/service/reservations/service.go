package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	reservationRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/reservation"
	"github.com/matchtag/MT-ReservationService/internal/queue"
	"github.com/matchtag/MT-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	cache           CacheInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
// publisher и cache могут быть nil - тогда события и инвалидация кеша пропускаются
func NewService(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Гость может видеть только своё бронирование, персонал бара - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, staff bool) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if reservation.GuestID != userID && !staff {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetGuestReservations получает историю бронирований гостя
// Опционально фильтрует по статусу
func (s *Service) GetGuestReservations(ctx context.Context, req *models.GetGuestReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetGuestReservations: fetching reservations for guest=%d, status=%v", req.GuestID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetGuestReservations: invalid status=%s for guest=%d", *req.Status, req.GuestID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByGuestID(ctx, req.GuestID, domainStatus)
	if err != nil {
		s.logger.Error("GetGuestReservations: repository error for guest=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: GetGuestReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestReservations: successfully fetched %d reservations for guest=%d", len(reservations), req.GuestID)
	return models.FromDomainReservationList(reservations), nil
}

// GetBarReservations получает бронирования бара с гибкой фильтрацией
// Поддерживает фильтрацию по столу, периоду, статусу и включению отменённых бронирований
// Доступно только персоналу бара
//
// Примеры использования:
// - Все активные бронирования: GetBarReservations(ctx, &GetBarReservationsRequest{BarID: 123, UserID: 456, Staff: true})
// - Бронирования конкретного стола: указать TableID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetBarReservations(ctx context.Context, req *models.GetBarReservationsRequest) (*models.ReservationListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetBarReservations: fetching reservations for bar=%d, user=%d", req.BarID, req.UserID)
	if req.TableID != nil {
		logMsg += fmt.Sprintf(", table=%d", *req.TableID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Список бронирований бара доступен только персоналу
	if !req.Staff {
		s.logger.Warn("GetBarReservations: access denied for user=%d to bar=%d", req.UserID, req.BarID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBarReservations: invalid filter for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	reservations, err := s.reservationRepo.GetByBarWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBarReservations: repository error for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: GetBarReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarReservations: successfully fetched %d reservations for bar=%d", len(reservations), req.BarID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Гость может отменить только своё бронирование, персонал бара - любое
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if reservation.GuestID != req.UserID && !req.Staff {
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
		return ErrAccessDenied
	}

	// Проверяем, можно ли отменить бронирование
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	// Отменяем бронирование
	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)

	// Пост-обработка: освободившийся слот снова доступен - сбрасываем кеш и публикуем событие
	// Ошибки здесь не откатывают отмену, только логируются
	s.invalidateCache(ctx, reservation.BarID, reservation.ReservationDate)
	s.publishCancelled(ctx, reservation, req.CancellationReason)

	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только персоналу бара; отмена идёт через Cancel, а не сюда
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	// Проверяем права доступа (только персонал бара)
	if !req.Staff {
		s.logger.Warn("UpdateStatus: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return ErrAccessDenied
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Отмена меняет не только статус, но и причину с временем отмены
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of reservation id=%d must go through Cancel", reservationID)
		return fmt.Errorf("%w: use the cancel endpoint to cancel a reservation", ErrInvalidStatus)
	}

	// Получаем бронирование
	if _, err := s.reservationRepo.GetByID(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Обновляем статус
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// Вспомогательные методы

// invalidateCache сбрасывает кеш доступности бара на дату бронирования
func (s *Service) invalidateCache(ctx context.Context, barID int64, date time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, barID, date); err != nil {
		s.logger.Warn("invalidateCache: failed to invalidate availability cache for bar=%d: %v", barID, err)
	}
}

// publishCancelled публикует событие об отменённом бронировании
func (s *Service) publishCancelled(ctx context.Context, res *domain.Reservation, reason string) {
	if s.publisher == nil {
		return
	}

	event := queue.ReservationCancelledEvent{
		ReservationID:   res.ID,
		BarID:           res.BarID,
		GuestID:         res.GuestID,
		TableID:         res.TableID,
		ReservationDate: res.ReservationDate.Format(domain.DateFormat),
		StartTime:       res.StartTime.String(),
		Reason:          reason,
		CancelledAt:     s.timeProvider.Now().UTC().Format(time.RFC3339),
	}

	if err := s.publisher.PublishReservationCancelled(ctx, event); err != nil {
		s.logger.Warn("publishCancelled: failed to publish cancelled event for reservation id=%d: %v", res.ID, err)
	}
}
