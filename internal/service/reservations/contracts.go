package reservations

import (
	"context"
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	"github.com/matchtag/MT-ReservationService/internal/queue"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByGuestID(ctx context.Context, guestID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByBarWithFilter(ctx context.Context, filter domain.BarReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// EventPublisher интерфейс публикации доменных событий
// Может отсутствовать (nil) - тогда события не публикуются
type EventPublisher interface {
	PublishReservationCancelled(ctx context.Context, event queue.ReservationCancelledEvent) error
}

// CacheInvalidator интерфейс сброса кеша доступности
// Может отсутствовать (nil)
type CacheInvalidator interface {
	Invalidate(ctx context.Context, barID int64, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
