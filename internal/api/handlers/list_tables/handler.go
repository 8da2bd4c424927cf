package list_tables

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
	"github.com/matchtag/MT-ReservationService/internal/service/tables"
	"github.com/matchtag/MT-ReservationService/internal/service/tables/models"
)

const (
	msgInvalidBarID  = "некорректный ID бара"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bars/{barId}/tables
// Query params: activeOnly (опционально, по умолчанию false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем barId из URL
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bars/{id}/tables - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	// Извлекаем activeOnly из query параметров (опционально)
	activeOnly := false
	if activeOnlyStr := r.URL.Query().Get("activeOnly"); activeOnlyStr != "" {
		activeOnly, err = strconv.ParseBool(activeOnlyStr)
		if err != nil {
			h.logger.Warn("GET /bars/{id}/tables - Invalid activeOnly value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	// Получаем столы
	result, err := h.service.List(r.Context(), &models.ListTablesRequest{
		BarID:      barID,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("GET /bars/{id}/tables - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /bars/{id}/tables - Failed to list tables: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bars/{id}/tables - Tables retrieved successfully: bar_id=%d, count=%d",
		barID, len(result.Tables))
	handlers.RespondJSON(w, http.StatusOK, result)
}
