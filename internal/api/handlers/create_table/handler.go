package create_table

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
	"github.com/matchtag/MT-ReservationService/internal/api/middleware"
	"github.com/matchtag/MT-ReservationService/internal/service/tables"
	"github.com/matchtag/MT-ReservationService/internal/service/tables/models"
)

const (
	msgInvalidBarID       = "некорректный ID бара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgDuplicateNumber    = "стол с таким номером уже существует"
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

// Handle POST /api/v1/bars/{barId}/tables
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем barId из URL
	vars := mux.Vars(r)
	barIDStr := vars["barId"]

	barID, err := strconv.ParseInt(barIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bars/{id}/tables - Invalid bar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bars/{id}/tables - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bars/{id}/tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.UserID = userID
	req.Staff = middleware.IsStaff(r.Context())
	req.BarID = barID

	// Создаем стол (сервис сам проверит права доступа)
	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrAccessDenied):
			h.logger.Warn("POST /bars/{id}/tables - Access denied: bar_id=%d, user_id=%d", barID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, tables.ErrDuplicateNumber):
			h.logger.Warn("POST /bars/{id}/tables - Duplicate table number: bar_id=%d, number=%d", barID, req.Number)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateNumber)

		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("POST /bars/{id}/tables - Invalid input: bar_id=%d, error=%v", barID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bars/{id}/tables - Failed to create table: bar_id=%d, error=%v", barID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bars/{id}/tables - Table created successfully: table_id=%d, bar_id=%d, user_id=%d",
		result.ID, barID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
