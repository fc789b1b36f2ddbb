package add_cart_item

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
	msgInvalidCartID      = "некорректный ID корзины"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCartNotFound       = "корзина не найдена"
	msgArticleNotFound    = "товар не найден"
	msgForbidden          = "доступ запрещен"
	msgCartFinalized      = "корзина уже завершена"
	msgInvalidInput       = "некорректные входные данные"
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

// Handle POST /api/v1/carts/{cartId}/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cartID, err := strconv.ParseInt(vars["cartId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /carts/{id}/items - Invalid cart ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCartID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /carts/{id}/items - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /carts/{id}/items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.AddItem(r.Context(), cartID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, carts.ErrCartNotFound):
			h.logger.Warn("POST /carts/{id}/items - Cart not found: cart_id=%d", cartID)
			handlers.RespondNotFound(w, msgCartNotFound)

		case errors.Is(err, carts.ErrArticleNotFound):
			h.logger.Warn("POST /carts/{id}/items - Article not found: cart_id=%d, article_id=%d",
				cartID, req.ArticleID)
			handlers.RespondNotFound(w, msgArticleNotFound)

		case errors.Is(err, carts.ErrAccessDenied):
			h.logger.Warn("POST /carts/{id}/items - Access denied: cart_id=%d, user_id=%d", cartID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, carts.ErrCartFinalized):
			h.logger.Warn("POST /carts/{id}/items - Cart finalized: cart_id=%d", cartID)
			handlers.RespondError(w, http.StatusConflict, msgCartFinalized)

		case errors.Is(err, carts.ErrInvalidInput):
			h.logger.Warn("POST /carts/{id}/items - Invalid input: cart_id=%d, error=%v", cartID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /carts/{id}/items - Failed to add item: cart_id=%d, error=%v", cartID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /carts/{id}/items - Item added: cart_id=%d, item_id=%d, user_id=%d",
		cartID, item.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, item)
}
