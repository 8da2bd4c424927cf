package get_guest_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
	"github.com/matchtag/MT-ReservationService/internal/api/middleware"
	"github.com/matchtag/MT-ReservationService/internal/service/reservations"
	"github.com/matchtag/MT-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidGuestID = "некорректный ID гостя"
	msgInvalidStatus  = "некорректный статус бронирования"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/guests/{guestId}/reservations
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем guestId из URL
	vars := mux.Vars(r)
	guestIDStr := vars["guestId"]

	guestID, err := strconv.ParseInt(guestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /guests/{id}/reservations - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /guests/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Гость видит только свою историю, персонал - любую
	if guestID != userID && !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /guests/{id}/reservations - Access denied: guest_id=%d, user_id=%d", guestID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetGuestReservationsRequest{
		GuestID: guestID,
	}

	// Извлекаем status из query параметров (опционально)
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	// Получаем бронирования
	result, err := h.service.GetGuestReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /guests/{id}/reservations - Invalid status: guest_id=%d", guestID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /guests/{id}/reservations - Failed to get reservations: guest_id=%d, error=%v",
				guestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /guests/{id}/reservations - Reservations retrieved successfully: guest_id=%d, count=%d",
		guestID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
