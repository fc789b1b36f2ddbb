package create_cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	deliveryRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/delivery"
)

// UseCase use case создания корзины: выбирает слот доставки с учетом
// вместимости и создает в нем новую корзину
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

// Execute выполняет use case создания корзины
// Подсчет занятости и вставка выполняются в сериализуемой транзакции с
// блокировкой строк слотов: два конкурентных запроса не могут оба увидеть
// свободное место и оба его занять
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCart: user=%d, delivery=%d", req.UserID, req.DeliveryID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCart: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем доставку
	delivery, err := uc.deliveryRepo.GetByID(ctx, req.DeliveryID)
	if err != nil {
		if errors.Is(err, deliveryRepo.ErrDeliveryNotFound) {
			uc.logger.Warn("CreateCart: delivery id=%d not found", req.DeliveryID)
			return nil, ErrDeliveryNotFound
		}
		uc.logger.Error("CreateCart: failed to get delivery id=%d: %v", req.DeliveryID, err)
		return nil, fmt.Errorf("%w: failed to get delivery: %v", ErrInternal, err)
	}

	var result *domain.Cart
	var selected domain.Slot

	// 3. Выбор слота и создание корзины в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Занятость слотов с блокировкой (FOR UPDATE)
		occupancies, err := uc.slotRepo.ListOccupancyByDelivery(txCtx, delivery.ID)
		if err != nil {
			uc.logger.Error("CreateCart: failed to get slot occupancies: %v", err)
			return fmt.Errorf("%w: failed to get slot occupancies: %v", ErrInternal, err)
		}

		// 3.2. Самый ранний слот, не достигший лимита
		slot, ok := domain.SelectSlot(delivery.MaxPerSlot, occupancies)
		if !ok {
			uc.logger.Warn("CreateCart: delivery id=%d has no free slot (%d slots, max_per_slot=%d)",
				delivery.ID, len(occupancies), delivery.MaxPerSlot)
			return ErrDeliveryFull
		}
		selected = slot

		// 3.3. Создаем корзину в выбранном слоте
		cart := &domain.Cart{
			UserID: req.UserID,
			SlotID: &slot.ID,
			Status: domain.StatusReceived,
		}

		created, err := uc.cartRepo.Create(txCtx, cart)
		if err != nil {
			uc.logger.Error("CreateCart: failed to create cart: %v", err)
			return fmt.Errorf("%w: failed to create cart: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateCart: successfully created cart id=%d in slot id=%d", result.ID, selected.ID)

	return &Response{
		CartID:    result.ID,
		UserID:    result.UserID,
		SlotID:    selected.ID,
		SlotStart: selected.Start,
		SlotEnd:   selected.End,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
	}, nil
}
