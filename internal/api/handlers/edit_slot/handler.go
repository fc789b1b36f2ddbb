package edit_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BasketService/internal/api/handlers"
	editSlot "github.com/m04kA/SMC-BasketService/internal/usecase/edit_slot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgSlotNotFound       = "слот не найден"
	msgSlotFrozen         = "в слоте есть корзины, границы изменить нельзя"
	msgInvalidRange       = "начало слота позже его конца"
)

type Handler struct {
	useCase EditSlotUseCase
	logger  Logger
}

func NewHandler(useCase EditSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req EditSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slotID)
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editSlot.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, editSlot.ErrSlotFrozen):
			h.logger.Warn("PUT /slots/{id} - Slot frozen: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFrozen)

		case errors.Is(err, editSlot.ErrInvalidRange):
			h.logger.Warn("PUT /slots/{id} - Invalid range: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, editSlot.ErrInvalidInput):
			h.logger.Warn("PUT /slots/{id} - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /slots/{id} - Failed to edit slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{id} - Slot updated: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
