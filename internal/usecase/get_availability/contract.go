package get_availability

import (
	"context"
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	// ListByBar получает снимок всех столов бара (активных и неактивных)
	ListByBar(ctx context.Context, filter domain.TablesFilter) ([]*domain.Table, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetByBarWithFilter получает бронирования бара на конкретную дату
	GetByBarWithFilter(ctx context.Context, filter domain.BarReservationsFilter) ([]*domain.Reservation, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByBar(ctx context.Context, barID int64) (*domain.ReservationSettings, error)
}

// AvailabilityCache кеш рассчитанной доступности
// Может отсутствовать (nil) - тогда каждый запрос считается заново
type AvailabilityCache interface {
	Get(ctx context.Context, barID int64, date time.Time, partySize, durationMinutes int) ([]domain.TimeSlot, error)
	Set(ctx context.Context, barID int64, date time.Time, partySize, durationMinutes int, slots []domain.TimeSlot) error
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
