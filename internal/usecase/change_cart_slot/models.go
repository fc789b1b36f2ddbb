package change_cart_slot

import "time"

// Request модель запроса на смену слота корзины
type Request struct {
	UserID int64 // ID владельца корзины
	CartID int64 // ID корзины
	SlotID int64 // ID запрошенного слота
}

// Response модель ответа со слотом, в котором оказалась корзина
type Response struct {
	CartID    int64
	SlotID    int64
	SlotStart time.Time
	SlotEnd   time.Time
	Changed   bool // false, если запрошен слот, в котором корзина уже находится
}
