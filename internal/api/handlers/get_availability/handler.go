package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
	getAvailability "github.com/matchtag/MT-ReservationService/internal/usecase/get_availability"
)

const (
	msgInvalidBarID     = "некорректный ID бара"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPartySize = "размер компании обязателен"
	msgInvalidPartySize = "некорректный размер компании"
	msgInvalidDuration  = "некорректная длительность посадки"
	msgInvalidSettings  = "некорректные настройки бронирования бара"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bars/{barId}/availability
// Query params: date (required, YYYY-MM-DD), partySize (required), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем barId из URL
	barIDStr := vars["barId"]
	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/availability - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /bars/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем partySize из query параметров
	partySizeStr := r.URL.Query().Get("partySize")
	if partySizeStr == "" {
		h.logger.Warn("GET /bars/{id}/availability - Missing party size")
		handlers.RespondBadRequest(w, msgMissingPartySize)
		return
	}

	partySize, err := strconv.Atoi(partySizeStr)
	if err != nil || partySize <= 0 {
		h.logger.Warn("GET /bars/{id}/availability - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	// Извлекаем duration из query параметров (опционально)
	durationMinutes := 0
	if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil || durationMinutes <= 0 {
			h.logger.Warn("GET /bars/{id}/availability - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(barID, dateStr, partySize, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /bars/{id}/availability - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidPartySize)

		case errors.Is(err, getAvailability.ErrInvalidSettings):
			h.logger.Warn("GET /bars/{id}/availability - Invalid settings: bar_id=%d, error=%v", barID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSettings)

		default:
			h.logger.Error("GET /bars/{id}/availability - Failed to compute availability: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /bars/{id}/availability - Availability computed successfully: bar_id=%d, date=%s, slots_count=%d",
		barID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
