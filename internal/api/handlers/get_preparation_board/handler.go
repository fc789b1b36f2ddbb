package get_preparation_board

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BasketService/internal/api/handlers"
	"github.com/m04kA/SMC-BasketService/internal/service/deliveries"
)

const (
	msgInvalidDeliveryID = "некорректный ID доставки"
	msgDeliveryNotFound  = "доставка не найдена"
)

type Handler struct {
	service DeliveryService
	logger  Logger
}

func NewHandler(service DeliveryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/deliveries/{deliveryId}/preparation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deliveryID, err := strconv.ParseInt(vars["deliveryId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /deliveries/{id}/preparation - Invalid delivery ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeliveryID)
		return
	}

	result, err := h.service.PreparationBoard(r.Context(), deliveryID)
	if err != nil {
		switch {
		case errors.Is(err, deliveries.ErrDeliveryNotFound):
			h.logger.Warn("GET /deliveries/{id}/preparation - Delivery not found: delivery_id=%d", deliveryID)
			handlers.RespondNotFound(w, msgDeliveryNotFound)

		default:
			h.logger.Error("GET /deliveries/{id}/preparation - Failed: delivery_id=%d, error=%v",
				deliveryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /deliveries/{id}/preparation - %d slots with carts: delivery_id=%d",
		len(result.Slots), deliveryID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
