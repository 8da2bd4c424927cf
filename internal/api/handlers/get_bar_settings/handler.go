package get_bar_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
	"github.com/matchtag/MT-ReservationService/internal/service/settings"
)

const (
	msgInvalidBarID = "некорректный ID бара"
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

// Handle GET /api/v1/bars/{barId}/settings
// Для бара без настроек возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем barId из URL
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/settings - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	// Получаем настройки
	result, err := h.service.GetByBar(r.Context(), barID)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("GET /bars/{id}/settings - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidBarID)

		default:
			h.logger.Error("GET /bars/{id}/settings - Failed to get settings: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bars/{id}/settings - Settings retrieved successfully: bar_id=%d, default=%v",
		barID, result.Default)
	handlers.RespondJSON(w, http.StatusOK, result)
}
