package create_cart

import (
	"time"

	createCart "github.com/m04kA/SMC-BasketService/internal/usecase/create_cart"
)

// CartResponse HTTP response model
type CartResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	SlotID    int64  `json:"slotId"`
	SlotStart string `json:"slotStart"` // RFC 3339
	SlotEnd   string `json:"slotEnd"`   // RFC 3339
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCart.Response) *CartResponse {
	return &CartResponse{
		ID:        resp.CartID,
		UserID:    resp.UserID,
		SlotID:    resp.SlotID,
		SlotStart: resp.SlotStart.Format(time.RFC3339),
		SlotEnd:   resp.SlotEnd.Format(time.RFC3339),
		Status:    resp.Status.Name(),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
