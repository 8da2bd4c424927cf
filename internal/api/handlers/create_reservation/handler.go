package create_reservation

import (
	"errors"
	"net/http"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
	"github.com/matchtag/MT-ReservationService/internal/api/middleware"
	createReservation "github.com/matchtag/MT-ReservationService/internal/usecase/create_reservation"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidReqDate     = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgBarClosed          = "бар закрыт в выбранную дату"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgPartyTooLarge      = "размер компании превышает ограничение бара"
	msgNoTableFits        = "нет стола, вмещающего компанию такого размера"
	msgTableNotFound      = "стол не найден"
	msgTableNotAvailable  = "выбранный слот уже занят"
	msgInvalidSettings    = "некорректные настройки бронирования бара"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	guestID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(guestID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrTableNotAvailable):
			h.logger.Warn("POST /reservations - Slot taken: guest_id=%d, bar_id=%d", guestID, req.BarID)
			handlers.RespondError(w, http.StatusConflict, msgTableNotAvailable)

		case errors.Is(err, createReservation.ErrTableNotFound):
			h.logger.Warn("POST /reservations - Table not found: guest_id=%d, bar_id=%d", guestID, req.BarID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createReservation.ErrNoTableFits):
			h.logger.Warn("POST /reservations - No table fits: guest_id=%d, bar_id=%d, party_size=%d",
				guestID, req.BarID, req.PartySize)
			handlers.RespondError(w, http.StatusConflict, msgNoTableFits)

		case errors.Is(err, createReservation.ErrBarClosed):
			h.logger.Warn("POST /reservations - Bar closed: guest_id=%d, bar_id=%d", guestID, req.BarID)
			handlers.RespondBadRequest(w, msgBarClosed)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid reservation date: guest_id=%d, bar_id=%d", guestID, req.BarID)
			handlers.RespondBadRequest(w, msgInvalidReqDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: guest_id=%d, bar_id=%d", guestID, req.BarID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: guest_id=%d, bar_id=%d", guestID, req.BarID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: guest_id=%d, bar_id=%d", guestID, req.BarID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrPartyTooLarge):
			h.logger.Warn("POST /reservations - Party too large: guest_id=%d, bar_id=%d, party_size=%d",
				guestID, req.BarID, req.PartySize)
			handlers.RespondBadRequest(w, msgPartyTooLarge)

		case errors.Is(err, createReservation.ErrInvalidSettings):
			h.logger.Warn("POST /reservations - Invalid settings: bar_id=%d, error=%v", req.BarID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSettings)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: guest_id=%d, error=%v", guestID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: guest_id=%d, bar_id=%d, error=%v",
				guestID, req.BarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, guest_id=%d, bar_id=%d",
		result.ID, guestID, req.BarID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
