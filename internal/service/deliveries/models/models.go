package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// Response модели

// SlotResponse слот доставки со счетчиком занятости
type SlotResponse struct {
	ID        int64     `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CartCount int       `json:"cartCount"`
	IsFull    bool      `json:"isFull"`
}

// DeliveryResponse доставка для витрины: имя точки, лимит, заполненность
// и слоты. FirstSlotStart == nil означает "время слотов не определено"
type DeliveryResponse struct {
	ID             int64          `json:"id"`
	LocationName   string         `json:"locationName"`
	MaxPerSlot     int            `json:"maxPerSlot"`
	IsFull         bool           `json:"isFull"`
	FirstSlotStart *time.Time     `json:"firstSlotStart,omitempty"`
	Slots          []SlotResponse `json:"slots"`
}

// DeliveryListResponse ответ со списком доставок
type DeliveryListResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
}

// NeededQuantityResponse строка отчета сборщика: суммарное количество
// товара по активным корзинам доставки
type NeededQuantityResponse struct {
	Label    string          `json:"label"`
	UnitType string          `json:"unitType"`
	Quantity decimal.Decimal `json:"quantity"`
}

// NeededQuantitiesResponse отчет по доставке
type NeededQuantitiesResponse struct {
	DeliveryID int64                    `json:"deliveryId"`
	Lines      []NeededQuantityResponse `json:"lines"`
}

// BoardCartResponse корзина на доске сборки
type BoardCartResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	Status     string `json:"status"`
	IsPrepared bool   `json:"isPrepared"`
}

// BoardSlotResponse слот доски сборки с его активными корзинами
type BoardSlotResponse struct {
	SlotID int64               `json:"slotId"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Carts  []BoardCartResponse `json:"carts"`
}

// PreparationBoardResponse активные корзины доставки, сгруппированные по
// слотам в порядке их начала
type PreparationBoardResponse struct {
	DeliveryID int64               `json:"deliveryId"`
	Slots      []BoardSlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainOccupancy конвертирует слот с занятостью в DTO
func FromDomainOccupancy(o domain.SlotOccupancy, maxPerSlot int) SlotResponse {
	return SlotResponse{
		ID:        o.Slot.ID,
		Start:     o.Slot.Start,
		End:       o.Slot.End,
		CartCount: o.CartCount,
		IsFull:    o.IsFull(maxPerSlot),
	}
}

// FromDomainNeededQuantities конвертирует отчет в DTO
func FromDomainNeededQuantities(deliveryID int64, lines []domain.NeededQuantity) *NeededQuantitiesResponse {
	resp := &NeededQuantitiesResponse{
		DeliveryID: deliveryID,
		Lines:      make([]NeededQuantityResponse, 0, len(lines)),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, NeededQuantityResponse{
			Label:    line.Label,
			UnitType: string(line.UnitType),
			Quantity: line.Quantity,
		})
	}
	return resp
}

// FromDomainBoardCart конвертирует корзину доски сборки в DTO
func FromDomainBoardCart(c *domain.Cart) BoardCartResponse {
	return BoardCartResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		Status:     c.Status.Name(),
		IsPrepared: c.IsPrepared(),
	}
}
