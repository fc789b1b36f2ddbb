package advance_cart_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BasketService/internal/api/handlers"
	"github.com/m04kA/SMC-BasketService/internal/api/middleware"
	"github.com/m04kA/SMC-BasketService/internal/service/carts"
	"github.com/m04kA/SMC-BasketService/internal/service/carts/models"
)

const (
	msgInvalidCartID      = "некорректный ID корзины"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCartNotFound       = "корзина не найдена"
	msgInvalidTransition  = "действие недопустимо из текущего статуса"
	msgUnknownAction      = "неизвестное действие"
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

// AdvanceStatusRequest HTTP request model
type AdvanceStatusRequest struct {
	Action string `json:"action"` // start | prepared | postpone | delivered | abandon
}

// Handle PATCH /api/v1/carts/{cartId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cartID, err := strconv.ParseInt(vars["cartId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /carts/{id}/status - Invalid cart ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCartID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /carts/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AdvanceStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /carts/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AdvanceStatus(r.Context(), cartID, &models.AdvanceStatusRequest{
		UserID: userID,
		Action: req.Action,
	})
	if err != nil {
		switch {
		case errors.Is(err, carts.ErrCartNotFound):
			h.logger.Warn("PATCH /carts/{id}/status - Cart not found: cart_id=%d", cartID)
			handlers.RespondNotFound(w, msgCartNotFound)

		case errors.Is(err, carts.ErrInvalidTransition):
			h.logger.Warn("PATCH /carts/{id}/status - Invalid transition: cart_id=%d, action=%s",
				cartID, req.Action)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, carts.ErrInvalidInput):
			h.logger.Warn("PATCH /carts/{id}/status - Unknown action: cart_id=%d, action=%s",
				cartID, req.Action)
			handlers.RespondBadRequest(w, msgUnknownAction)

		default:
			h.logger.Error("PATCH /carts/{id}/status - Failed to advance status: cart_id=%d, error=%v",
				cartID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /carts/{id}/status - Status advanced: cart_id=%d, %s -> %s, user_id=%d",
		cartID, result.PreviousStatus, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
