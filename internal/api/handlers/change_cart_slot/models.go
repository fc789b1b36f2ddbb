package change_cart_slot

import (
	"time"

	changeCartSlot "github.com/m04kA/SMC-BasketService/internal/usecase/change_cart_slot"
)

// ChangeSlotRequest HTTP request model
type ChangeSlotRequest struct {
	SlotID int64 `json:"slotId"`
}

// ChangeSlotResponse HTTP response model
type ChangeSlotResponse struct {
	CartID    int64  `json:"cartId"`
	SlotID    int64  `json:"slotId"`
	SlotStart string `json:"slotStart"` // RFC 3339
	SlotEnd   string `json:"slotEnd"`   // RFC 3339
	Changed   bool   `json:"changed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeCartSlot.Response) *ChangeSlotResponse {
	return &ChangeSlotResponse{
		CartID:    resp.CartID,
		SlotID:    resp.SlotID,
		SlotStart: resp.SlotStart.Format(time.RFC3339),
		SlotEnd:   resp.SlotEnd.Format(time.RFC3339),
		Changed:   resp.Changed,
	}
}
