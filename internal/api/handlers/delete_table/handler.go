package delete_table

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
	"github.com/matchtag/MT-ReservationService/internal/api/middleware"
	"github.com/matchtag/MT-ReservationService/internal/service/tables"
)

const (
	msgInvalidTableID = "некорректный ID стола"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
	msgNotFound       = "стол не найден"
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

// Handle DELETE /api/v1/bars/{barId}/tables/{tableId}
// Стол деактивируется, а не удаляется - история бронирований сохраняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tableId из URL
	vars := mux.Vars(r)
	tableIDStr := vars["tableId"]

	tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bars/{id}/tables/{id} - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTableID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bars/{id}/tables/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Деактивируем стол (сервис сам проверит права доступа)
	if err := h.service.Deactivate(r.Context(), tableID, userID, middleware.IsStaff(r.Context())); err != nil {
		switch {
		case errors.Is(err, tables.ErrAccessDenied):
			h.logger.Warn("DELETE /bars/{id}/tables/{id} - Access denied: table_id=%d, user_id=%d", tableID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, tables.ErrTableNotFound):
			h.logger.Warn("DELETE /bars/{id}/tables/{id} - Table not found: table_id=%d", tableID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /bars/{id}/tables/{id} - Failed to deactivate table: table_id=%d, error=%v",
				tableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bars/{id}/tables/{id} - Table deactivated successfully: table_id=%d, user_id=%d",
		tableID, userID)
	handlers.RespondNoContent(w)
}
