package get_bar_reservations

import (
	"context"

	"github.com/matchtag/MT-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetBarReservations(ctx context.Context, req *models.GetBarReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
