package edit_slot

import (
	"time"

	editSlot "github.com/m04kA/SMC-BasketService/internal/usecase/edit_slot"
)

// EditSlotRequest HTTP request model
type EditSlotRequest struct {
	Start string `json:"start"` // RFC 3339
	End   string `json:"end"`   // RFC 3339
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID         int64  `json:"id"`
	DeliveryID int64  `json:"deliveryId"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditSlotRequest) ToUseCaseRequest(slotID int64) (*editSlot.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}

	return &editSlot.Request{
		SlotID: slotID,
		Start:  start,
		End:    end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:         resp.SlotID,
		DeliveryID: resp.DeliveryID,
		Start:      resp.Start.Format(time.RFC3339),
		End:        resp.End.Format(time.RFC3339),
	}
}
