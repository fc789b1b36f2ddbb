package remove_cart_item

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BasketService/internal/api/handlers"
	"github.com/m04kA/SMC-BasketService/internal/api/middleware"
	"github.com/m04kA/SMC-BasketService/internal/service/carts"
)

const (
	msgInvalidCartID = "некорректный ID корзины"
	msgInvalidItemID = "некорректный ID позиции"
	msgMissingUserID = "отсутствует ID пользователя"
	msgCartNotFound  = "корзина не найдена"
	msgItemNotFound  = "позиция не найдена"
	msgForbidden     = "доступ запрещен"
	msgCartFinalized = "корзина уже завершена"
)

type Handler struct {
	service CartService
	logger  Logger
}

func NewHandler(service CartService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/carts/{cartId}/items/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cartID, err := strconv.ParseInt(vars["cartId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /carts/{id}/items/{itemId} - Invalid cart ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCartID)
		return
	}

	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /carts/{id}/items/{itemId} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /carts/{id}/items/{itemId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.RemoveItem(r.Context(), cartID, itemID, userID); err != nil {
		switch {
		case errors.Is(err, carts.ErrCartNotFound):
			h.logger.Warn("DELETE /carts/{id}/items/{itemId} - Cart not found: cart_id=%d", cartID)
			handlers.RespondNotFound(w, msgCartNotFound)

		case errors.Is(err, carts.ErrItemNotFound):
			h.logger.Warn("DELETE /carts/{id}/items/{itemId} - Item not found: cart_id=%d, item_id=%d",
				cartID, itemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, carts.ErrAccessDenied):
			h.logger.Warn("DELETE /carts/{id}/items/{itemId} - Access denied: cart_id=%d, user_id=%d",
				cartID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, carts.ErrCartFinalized):
			h.logger.Warn("DELETE /carts/{id}/items/{itemId} - Cart finalized: cart_id=%d", cartID)
			handlers.RespondError(w, http.StatusConflict, msgCartFinalized)

		default:
			h.logger.Error("DELETE /carts/{id}/items/{itemId} - Failed to remove item: cart_id=%d, item_id=%d, error=%v",
				cartID, itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /carts/{id}/items/{itemId} - Item removed: cart_id=%d, item_id=%d, user_id=%d",
		cartID, itemID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
