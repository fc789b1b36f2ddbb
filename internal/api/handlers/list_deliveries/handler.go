package list_deliveries

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BasketService/internal/api/handlers"
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

// Handle GET /api/v1/deliveries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListUpcoming(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("GET /deliveries - Failed to list deliveries: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /deliveries - %d deliveries listed", len(result.Deliveries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
