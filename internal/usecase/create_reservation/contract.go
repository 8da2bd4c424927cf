package create_reservation

import (
	"context"
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	"github.com/matchtag/MT-ReservationService/internal/queue"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByBarWithFilter(ctx context.Context, filter domain.BarReservationsFilter) ([]*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	ListByBar(ctx context.Context, filter domain.TablesFilter) ([]*domain.Table, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByBar(ctx context.Context, barID int64) (*domain.ReservationSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации доменных событий
// Может отсутствовать (nil) - тогда события не публикуются
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, event queue.ReservationCreatedEvent) error
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
