package settings

import (
	"context"

	"github.com/matchtag/MT-ReservationService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByBar(ctx context.Context, barID int64) (*domain.ReservationSettings, error)
	Upsert(ctx context.Context, s *domain.ReservationSettings) (*domain.ReservationSettings, error)
	Delete(ctx context.Context, barID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
