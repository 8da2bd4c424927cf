package update_table

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
	msgInvalidTableID     = "некорректный ID стола"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "стол не найден"
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

// Handle PUT /api/v1/bars/{barId}/tables/{tableId}
// Поддерживает частичное обновление - обновляются только указанные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tableId из URL
	vars := mux.Vars(r)
	tableIDStr := vars["tableId"]

	tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bars/{id}/tables/{id} - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bars/{id}/tables/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bars/{id}/tables/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.UserID = userID
	req.Staff = middleware.IsStaff(r.Context())

	// Обновляем стол (сервис сам проверит права доступа)
	result, err := h.service.Update(r.Context(), tableID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrAccessDenied):
			h.logger.Warn("PUT /bars/{id}/tables/{id} - Access denied: table_id=%d, user_id=%d", tableID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, tables.ErrTableNotFound):
			h.logger.Warn("PUT /bars/{id}/tables/{id} - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tables.ErrDuplicateNumber):
			h.logger.Warn("PUT /bars/{id}/tables/{id} - Duplicate table number: table_id=%d", tableID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateNumber)

		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("PUT /bars/{id}/tables/{id} - Invalid input: table_id=%d, error=%v", tableID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bars/{id}/tables/{id} - Failed to update table: table_id=%d, error=%v", tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bars/{id}/tables/{id} - Table updated successfully: table_id=%d, user_id=%d",
		tableID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
