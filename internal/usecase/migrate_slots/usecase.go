package migrate_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BasketService/internal/domain"
)

// UseCase перенос интервальных доставок на явные слоты и обратно.
// Каждая доставка мигрирует в собственной транзакции: упавшая доставка
// откатывается целиком, уже перенесенные остаются перенесенными
type UseCase struct {
	deliveryRepo DeliveryRepository
	slotRepo     SlotRepository
	cartRepo     CartRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	deliveryRepo DeliveryRepository,
	slotRepo SlotRepository,
	cartRepo CartRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		deliveryRepo: deliveryRepo,
		slotRepo:     slotRepo,
		cartRepo:     cartRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет прямую миграцию: для каждой интервальной доставки
// нарезает слоты и перепривязывает корзины по их выбранному времени.
// Корзина, чье время не попадает ни в один слот, остается без слота и
// фиксируется в отчете
func (uc *UseCase) Execute(ctx context.Context) (*Report, error) {
	legacies, err := uc.deliveryRepo.ListLegacy(ctx)
	if err != nil {
		uc.logger.Error("MigrateSlots: failed to list legacy deliveries: %v", err)
		return nil, fmt.Errorf("%w: failed to list legacy deliveries: %v", ErrInternal, err)
	}

	report := &Report{}

	for _, legacy := range legacies {
		legacy := legacy
		err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			return uc.migrateDelivery(txCtx, legacy, report)
		})
		if err != nil {
			uc.logger.Error("MigrateSlots: delivery id=%d failed: %v", legacy.ID, err)
			return nil, fmt.Errorf("%w: delivery id=%d: %v", ErrInternal, legacy.ID, err)
		}
		report.Deliveries++
	}

	uc.logger.Info("MigrateSlots: %d deliveries, %d slots, %d carts moved, %d unattached",
		report.Deliveries, report.SlotsCreated, report.CartsMoved, report.Unattached)
	return report, nil
}

func (uc *UseCase) migrateDelivery(ctx context.Context, legacy domain.LegacyDelivery, report *Report) error {
	// 1. Нарезаем окно доставки на слоты
	slots := domain.DeriveSlots(legacy)
	created := make([]domain.Slot, 0, len(slots))
	for i := range slots {
		s, err := uc.slotRepo.Create(ctx, &slots[i])
		if err != nil {
			return fmt.Errorf("failed to create slot: %v", err)
		}
		created = append(created, *s)
	}
	report.SlotsCreated += len(created)

	// 2. Раскладываем корзины по слотам по выбранному клиентом времени
	carts, err := uc.cartRepo.ListLegacyByDelivery(ctx, legacy.ID)
	if err != nil {
		return fmt.Errorf("failed to list legacy carts: %v", err)
	}

	for _, c := range carts {
		idx, ok := domain.SlotIndexForTime(created, c.Start)
		if !ok {
			uc.logger.Warn("MigrateSlots: cart id=%d time %s maps to no slot of delivery id=%d, left unattached",
				c.ID, c.Start, legacy.ID)
			report.Unattached++
			continue
		}
		if err := uc.cartRepo.UpdateSlot(ctx, c.ID, created[idx].ID); err != nil {
			return fmt.Errorf("failed to attach cart id=%d: %v", c.ID, err)
		}
		report.CartsMoved++
	}

	// 3. Снимаем интервальные поля: доставка считается перенесенной
	if err := uc.deliveryRepo.ClearLegacyFields(ctx, legacy.ID); err != nil {
		return fmt.Errorf("failed to clear legacy fields: %v", err)
	}

	return nil
}

// Rollback выполняет обратную миграцию: восстанавливает интервальные поля
// доставок из их слотов и возвращает корзинам прямую привязку к доставке.
// Точен для слотов, нарезанных Execute; для разнородных слотов интервал
// восстанавливается по самому длинному
func (uc *UseCase) Rollback(ctx context.Context) (*RollbackReport, error) {
	ids, err := uc.deliveryRepo.ListIDs(ctx)
	if err != nil {
		uc.logger.Error("MigrateSlots: rollback failed to list deliveries: %v", err)
		return nil, fmt.Errorf("%w: failed to list deliveries: %v", ErrInternal, err)
	}

	report := &RollbackReport{}

	for _, id := range ids {
		id := id
		err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			return uc.rollbackDelivery(txCtx, id, report)
		})
		if err != nil {
			uc.logger.Error("MigrateSlots: rollback of delivery id=%d failed: %v", id, err)
			return nil, fmt.Errorf("%w: delivery id=%d: %v", ErrInternal, id, err)
		}
	}

	uc.logger.Info("MigrateSlots: rollback done, %d deliveries, %d slots dropped, %d carts moved",
		report.Deliveries, report.SlotsDropped, report.CartsMoved)
	return report, nil
}

func (uc *UseCase) rollbackDelivery(ctx context.Context, deliveryID int64, report *RollbackReport) error {
	slots, err := uc.slotRepo.ListByDelivery(ctx, deliveryID)
	if err != nil {
		return fmt.Errorf("failed to list slots: %v", err)
	}

	// Доставка без слотов либо не мигрировала, либо уже откатана
	legacy, ok := domain.ReverseDerive(slots)
	if !ok {
		return nil
	}

	// 1. Интервальные поля доставки
	if err := uc.deliveryRepo.UpdateLegacyFields(ctx, deliveryID, legacy); err != nil {
		return fmt.Errorf("failed to restore delivery legacy fields: %v", err)
	}

	// 2. Корзинам возвращаем прямую ссылку; время берем из начала их слота
	startBySlot := make(map[int64]domain.Slot, len(slots))
	for _, s := range slots {
		startBySlot[s.ID] = s
	}

	carts, err := uc.cartRepo.ListSlottedByDelivery(ctx, deliveryID)
	if err != nil {
		return fmt.Errorf("failed to list slotted carts: %v", err)
	}

	for _, c := range carts {
		slot, ok := startBySlot[c.SlotID]
		if !ok {
			return fmt.Errorf("cart id=%d references unknown slot id=%d", c.ID, c.SlotID)
		}
		if err := uc.cartRepo.UpdateLegacyFields(ctx, c.ID, deliveryID, slot.Start); err != nil {
			return fmt.Errorf("failed to restore cart id=%d legacy fields: %v", c.ID, err)
		}
		report.CartsMoved++
	}

	// 3. Сносим слоты; ссылки корзин на них обнуляются на уровне схемы
	if err := uc.slotRepo.DeleteByDelivery(ctx, deliveryID); err != nil {
		return fmt.Errorf("failed to delete slots: %v", err)
	}

	report.Deliveries++
	report.SlotsDropped += len(slots)
	return nil
}
