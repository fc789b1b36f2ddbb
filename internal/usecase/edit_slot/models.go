package edit_slot

import "time"

// Request запрос на изменение границ слота
type Request struct {
	SlotID int64
	Start  time.Time
	End    time.Time
}

// Response результат изменения границ слота
type Response struct {
	SlotID     int64
	DeliveryID int64
	Start      time.Time
	End        time.Time
}
