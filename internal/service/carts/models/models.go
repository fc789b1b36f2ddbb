package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// Request модели

// AddItemRequest запрос на добавление позиции в корзину
type AddItemRequest struct {
	UserID    int64           `json:"userId"`
	ArticleID int64           `json:"articleId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// UpdateAnnotationRequest запрос на обновление комментария к корзине
type UpdateAnnotationRequest struct {
	UserID     int64  `json:"userId"`
	Annotation string `json:"annotation"`
}

// AdvanceStatusRequest запрос на действие над статусом корзины
type AdvanceStatusRequest struct {
	UserID int64  `json:"userId"`
	Action string `json:"action"`
}

// Response модели

// CartItemResponse позиция корзины с вычисленной стоимостью строки
type CartItemResponse struct {
	ID        int64           `json:"id"`
	Label     string          `json:"label"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitType  string          `json:"unitType"`
	Quantity  decimal.Decimal `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartResponse корзина с позициями и итоговой суммой
type CartResponse struct {
	ID         int64              `json:"id"`
	UserID     int64              `json:"userId"`
	SlotID     *int64             `json:"slotId,omitempty"`
	Status     string             `json:"status"`
	Annotation string             `json:"annotation,omitempty"`
	Items      []CartItemResponse `json:"items"`
	Total      decimal.Decimal    `json:"total"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// StatusResponse результат действия над статусом
type StatusResponse struct {
	CartID         int64  `json:"cartId"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus"`
}

// Методы конвертации

// FromDomainItem конвертирует позицию корзины в DTO
func FromDomainItem(item *domain.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		Label:     item.Label,
		UnitPrice: item.UnitPrice,
		UnitType:  string(item.UnitType),
		Quantity:  item.Quantity,
		LineTotal: item.LineTotal(),
	}
}

// FromDomainCart собирает DTO корзины из domain модели и ее позиций
func FromDomainCart(c *domain.Cart, items []*domain.CartItem) *CartResponse {
	resp := &CartResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		SlotID:     c.SlotID,
		Status:     c.Status.Name(),
		Annotation: c.Annotation,
		Items:      make([]CartItemResponse, 0, len(items)),
		Total:      domain.CartTotal(items),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, FromDomainItem(item))
	}

	return resp
}
