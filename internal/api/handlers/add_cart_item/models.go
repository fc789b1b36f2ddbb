package add_cart_item

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BasketService/internal/service/carts/models"
)

// AddItemRequest HTTP request model. Количество приходит строкой или
// числом; decimal принимает оба варианта без потери точности
type AddItemRequest struct {
	ArticleID int64           `json:"articleId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AddItemRequest) ToServiceRequest(userID int64) *models.AddItemRequest {
	return &models.AddItemRequest{
		UserID:    userID,
		ArticleID: r.ArticleID,
		Quantity:  r.Quantity,
	}
}
