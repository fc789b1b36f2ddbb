package get_cart

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
	msgMissingUserID = "отсутствует ID пользователя"
	msgCartNotFound  = "корзина не найдена"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/carts/{cartId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cartID, err := strconv.ParseInt(vars["cartId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /carts/{id} - Invalid cart ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCartID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /carts/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	cart, err := h.service.GetByID(r.Context(), cartID, userID)
	if err != nil {
		switch {
		case errors.Is(err, carts.ErrCartNotFound):
			h.logger.Warn("GET /carts/{id} - Cart not found: cart_id=%d", cartID)
			handlers.RespondNotFound(w, msgCartNotFound)

		case errors.Is(err, carts.ErrAccessDenied):
			h.logger.Warn("GET /carts/{id} - Access denied: cart_id=%d, user_id=%d", cartID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /carts/{id} - Failed to get cart: cart_id=%d, error=%v", cartID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /carts/{id} - Cart retrieved: cart_id=%d, user_id=%d", cartID, userID)
	handlers.RespondJSON(w, http.StatusOK, cart)
}
