package update_cart_annotation

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
	msgForbidden          = "доступ запрещен"
	msgCartFinalized      = "корзина уже завершена"
	msgAnnotationTooLong  = "комментарий слишком длинный"
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

// UpdateAnnotationRequest HTTP request model
type UpdateAnnotationRequest struct {
	Annotation string `json:"annotation"`
}

// Handle PATCH /api/v1/carts/{cartId}/annotation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cartID, err := strconv.ParseInt(vars["cartId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /carts/{id}/annotation - Invalid cart ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCartID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /carts/{id}/annotation - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAnnotationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /carts/{id}/annotation - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateAnnotation(r.Context(), cartID, &models.UpdateAnnotationRequest{
		UserID:     userID,
		Annotation: req.Annotation,
	})
	if err != nil {
		switch {
		case errors.Is(err, carts.ErrCartNotFound):
			h.logger.Warn("PATCH /carts/{id}/annotation - Cart not found: cart_id=%d", cartID)
			handlers.RespondNotFound(w, msgCartNotFound)

		case errors.Is(err, carts.ErrAccessDenied):
			h.logger.Warn("PATCH /carts/{id}/annotation - Access denied: cart_id=%d, user_id=%d",
				cartID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, carts.ErrCartFinalized):
			h.logger.Warn("PATCH /carts/{id}/annotation - Cart finalized: cart_id=%d", cartID)
			handlers.RespondError(w, http.StatusConflict, msgCartFinalized)

		case errors.Is(err, carts.ErrInvalidInput):
			h.logger.Warn("PATCH /carts/{id}/annotation - Annotation too long: cart_id=%d", cartID)
			handlers.RespondBadRequest(w, msgAnnotationTooLong)

		default:
			h.logger.Error("PATCH /carts/{id}/annotation - Failed to update: cart_id=%d, error=%v", cartID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /carts/{id}/annotation - Annotation updated: cart_id=%d, user_id=%d", cartID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
