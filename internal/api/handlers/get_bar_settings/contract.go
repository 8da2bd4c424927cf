package get_bar_settings

import (
	"context"

	"github.com/matchtag/MT-ReservationService/internal/service/settings/models"
)

type SettingsService interface {
	GetByBar(ctx context.Context, barID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
