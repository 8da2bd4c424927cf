package update_bar_settings

import (
	"context"

	"github.com/matchtag/MT-ReservationService/internal/service/settings/models"
)

type SettingsService interface {
	Upsert(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
