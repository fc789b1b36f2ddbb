package create_cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BasketService/internal/api/handlers"
	"github.com/m04kA/SMC-BasketService/internal/api/middleware"
	createCart "github.com/m04kA/SMC-BasketService/internal/usecase/create_cart"
)

const (
	msgInvalidDeliveryID = "некорректный ID доставки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgDeliveryNotFound  = "доставка не найдена"
	msgDeliveryFull      = "доставка заполнена, свободных слотов нет"
	msgInvalidInput      = "некорректные входные данные"
)

type Handler struct {
	useCase CreateCartUseCase
	logger  Logger
}

func NewHandler(useCase CreateCartUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/deliveries/{deliveryId}/carts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deliveryID, err := strconv.ParseInt(vars["deliveryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /deliveries/{id}/carts - Invalid delivery ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeliveryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /deliveries/{id}/carts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createCart.Request{
		UserID:     userID,
		DeliveryID: deliveryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, createCart.ErrDeliveryNotFound):
			h.logger.Warn("POST /deliveries/{id}/carts - Delivery not found: delivery_id=%d", deliveryID)
			handlers.RespondNotFound(w, msgDeliveryNotFound)

		case errors.Is(err, createCart.ErrDeliveryFull):
			h.logger.Warn("POST /deliveries/{id}/carts - Delivery full: delivery_id=%d, user_id=%d",
				deliveryID, userID)
			handlers.RespondError(w, http.StatusConflict, msgDeliveryFull)

		case errors.Is(err, createCart.ErrInvalidInput):
			h.logger.Warn("POST /deliveries/{id}/carts - Invalid input: delivery_id=%d, error=%v",
				deliveryID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /deliveries/{id}/carts - Failed to create cart: delivery_id=%d, user_id=%d, error=%v",
				deliveryID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /deliveries/{id}/carts - Cart created: cart_id=%d, slot_id=%d, user_id=%d",
		result.CartID, result.SlotID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
