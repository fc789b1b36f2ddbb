package edit_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	slotRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/slot"
)

// UseCase use case изменения границ слота администратором
type UseCase struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case изменения границ слота
// Занятый слот заморожен: покупатели уже выбрали его по текущему окну,
// и сдвиг границ под ними был бы молчаливым изменением их заказа.
// Проверка занятости идет в той же транзакции, что и запись, чтобы
// параллельное создание корзины не проскочило между ними
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditSlot: slot=%d, start=%s, end=%s", req.SlotID, req.Start, req.End)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditSlot: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Проверка занятости и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Слот (строка блокируется FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("EditSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("EditSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Количество корзин в слоте
		occupancy, err := uc.slotRepo.Occupancy(txCtx, slot.ID)
		if err != nil {
			uc.logger.Error("EditSlot: failed to count slot id=%d occupancy: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to count occupancy: %v", ErrInternal, err)
		}

		// 2.3. Заморозка важнее проверки диапазона
		if err := domain.ValidateSlotEdit(occupancy, req.Start, req.End); err != nil {
			switch {
			case errors.Is(err, domain.ErrSlotFrozen):
				uc.logger.Warn("EditSlot: slot id=%d is frozen, %d carts inside", slot.ID, occupancy)
				return ErrSlotFrozen
			case errors.Is(err, domain.ErrInvalidSlotRange):
				uc.logger.Warn("EditSlot: slot id=%d rejected, start after end", slot.ID)
				return ErrInvalidRange
			default:
				return fmt.Errorf("%w: unexpected validation error: %v", ErrInternal, err)
			}
		}

		// 2.4. Обновляем границы
		if err := uc.slotRepo.UpdateBounds(txCtx, slot.ID, req.Start, req.End); err != nil {
			uc.logger.Error("EditSlot: failed to update slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		result = &Response{
			SlotID:     slot.ID,
			DeliveryID: slot.DeliveryID,
			Start:      req.Start,
			End:        req.End,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("EditSlot: slot id=%d bounds updated", result.SlotID)
	return result, nil
}
