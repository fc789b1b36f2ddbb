package change_cart_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BasketService/internal/api/handlers"
	"github.com/m04kA/SMC-BasketService/internal/api/middleware"
	changeCartSlot "github.com/m04kA/SMC-BasketService/internal/usecase/change_cart_slot"
)

const (
	msgInvalidCartID      = "некорректный ID корзины"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCartNotFound       = "корзина не найдена"
	msgSlotNotFound       = "слот не найден"
	msgForbidden          = "доступ запрещен"
	msgCartFinalized      = "корзина уже завершена"
	msgSlotFull           = "выбранный слот заполнен"
	msgWrongDelivery      = "слот принадлежит другой доставке"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ChangeCartSlotUseCase
	logger  Logger
}

func NewHandler(useCase ChangeCartSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/carts/{cartId}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cartID, err := strconv.ParseInt(vars["cartId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /carts/{id}/slot - Invalid cart ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCartID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /carts/{id}/slot - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ChangeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /carts/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &changeCartSlot.Request{
		UserID: userID,
		CartID: cartID,
		SlotID: req.SlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, changeCartSlot.ErrCartNotFound):
			h.logger.Warn("PATCH /carts/{id}/slot - Cart not found: cart_id=%d", cartID)
			handlers.RespondNotFound(w, msgCartNotFound)

		case errors.Is(err, changeCartSlot.ErrSlotNotFound):
			h.logger.Warn("PATCH /carts/{id}/slot - Slot not found: cart_id=%d, slot_id=%d", cartID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, changeCartSlot.ErrNotCartOwner):
			h.logger.Warn("PATCH /carts/{id}/slot - Access denied: cart_id=%d, user_id=%d", cartID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changeCartSlot.ErrCartFinalized):
			h.logger.Warn("PATCH /carts/{id}/slot - Cart finalized: cart_id=%d", cartID)
			handlers.RespondError(w, http.StatusConflict, msgCartFinalized)

		case errors.Is(err, changeCartSlot.ErrSlotFull):
			h.logger.Warn("PATCH /carts/{id}/slot - Slot full: cart_id=%d, slot_id=%d", cartID, req.SlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, changeCartSlot.ErrWrongDelivery):
			h.logger.Warn("PATCH /carts/{id}/slot - Wrong delivery: cart_id=%d, slot_id=%d", cartID, req.SlotID)
			handlers.RespondUnprocessable(w, msgWrongDelivery)

		case errors.Is(err, changeCartSlot.ErrInvalidInput):
			h.logger.Warn("PATCH /carts/{id}/slot - Invalid input: cart_id=%d, error=%v", cartID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /carts/{id}/slot - Failed to change slot: cart_id=%d, user_id=%d, error=%v",
				cartID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /carts/{id}/slot - Slot changed: cart_id=%d, slot_id=%d, changed=%t",
		result.CartID, result.SlotID, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
