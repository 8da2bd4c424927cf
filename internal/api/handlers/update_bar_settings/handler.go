package update_bar_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
	"github.com/matchtag/MT-ReservationService/internal/api/middleware"
	"github.com/matchtag/MT-ReservationService/internal/service/settings"
	"github.com/matchtag/MT-ReservationService/internal/service/settings/models"
)

const (
	msgInvalidBarID       = "некорректный ID бара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bars/{barId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем barId из URL
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bars/{id}/settings - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bars/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bars/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.UserID = userID
	req.Staff = middleware.IsStaff(r.Context())
	req.BarID = barID

	// Обновляем настройки (сервис сам проверит права доступа)
	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /bars/{id}/settings - Access denied: bar_id=%d, user_id=%d", barID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /bars/{id}/settings - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bars/{id}/settings - Failed to update settings: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bars/{id}/settings - Settings updated successfully: bar_id=%d, user_id=%d", barID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
