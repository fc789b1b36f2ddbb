package migrate_slots

// Report итог прямой миграции интервальных доставок в слоты
type Report struct {
	Deliveries   int // обработано доставок
	SlotsCreated int // создано слотов
	CartsMoved   int // корзин перепривязано к слотам
	Unattached   int // корзин осталось без слота (время вне окна)
}

// RollbackReport итог отката миграции
type RollbackReport struct {
	Deliveries   int // доставок с восстановленными интервальными полями
	SlotsDropped int // удалено слотов
	CartsMoved   int // корзин возвращено на дослотовые поля
}
