package change_cart_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	cartRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/cart"
	slotRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/slot"
)

// UseCase use case переноса корзины в другой слот той же доставки
type UseCase struct {
	cartRepo     CartRepository
	slotRepo     SlotRepository
	deliveryRepo DeliveryRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cartRepo CartRepository,
	slotRepo SlotRepository,
	deliveryRepo DeliveryRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		cartRepo:     cartRepo,
		slotRepo:     slotRepo,
		deliveryRepo: deliveryRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case смены слота
// Ключевая тонкость: повторная отправка слота, в котором корзина уже
// находится, всегда успешна — собственная корзина пользователя не
// считается против слота, который он уже занимает. Проверка вместимости
// применяется только к действительно новому слоту
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeCartSlot: user=%d, cart=%d, slot=%d", req.UserID, req.CartID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeCartSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем корзину и проверяем права
	cart, err := uc.cartRepo.GetByID(ctx, req.CartID)
	if err != nil {
		if errors.Is(err, cartRepo.ErrCartNotFound) {
			uc.logger.Warn("ChangeCartSlot: cart id=%d not found", req.CartID)
			return nil, ErrCartNotFound
		}
		uc.logger.Error("ChangeCartSlot: failed to get cart id=%d: %v", req.CartID, err)
		return nil, fmt.Errorf("%w: failed to get cart: %v", ErrInternal, err)
	}

	if !cart.IsOwnedBy(req.UserID) {
		uc.logger.Warn("ChangeCartSlot: cart id=%d belongs to user=%d, not user=%d",
			cart.ID, cart.UserID, req.UserID)
		return nil, ErrNotCartOwner
	}

	if cart.Status.IsTerminal() {
		uc.logger.Warn("ChangeCartSlot: cart id=%d is finalized (status=%d)", cart.ID, cart.Status)
		return nil, ErrCartFinalized
	}

	var result *Response

	// 3. Проверка вместимости и перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Запрошенный слот (строка блокируется FOR UPDATE)
		requested, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ChangeCartSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("ChangeCartSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3.2. Слот должен принадлежать доставке корзины
		if cart.SlotID != nil && *cart.SlotID != requested.ID {
			current, err := uc.slotRepo.GetByID(txCtx, *cart.SlotID)
			if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Error("ChangeCartSlot: failed to get current slot id=%d: %v", *cart.SlotID, err)
				return fmt.Errorf("%w: failed to get current slot: %v", ErrInternal, err)
			}
			if current != nil && current.DeliveryID != requested.DeliveryID {
				uc.logger.Warn("ChangeCartSlot: slot id=%d belongs to delivery=%d, cart is in delivery=%d",
					requested.ID, requested.DeliveryID, current.DeliveryID)
				return ErrWrongDelivery
			}
		}

		// 3.3. Повторная отправка текущего слота — no-op, всегда успех
		if cart.IsInSlot(requested.ID) {
			uc.logger.Info("ChangeCartSlot: cart id=%d already in slot id=%d", cart.ID, requested.ID)
			result = &Response{
				CartID:    cart.ID,
				SlotID:    requested.ID,
				SlotStart: requested.Start,
				SlotEnd:   requested.End,
				Changed:   false,
			}
			return nil
		}

		// 3.4. Лимит доставки и занятость запрошенного слота
		delivery, err := uc.deliveryRepo.GetByID(txCtx, requested.DeliveryID)
		if err != nil {
			uc.logger.Error("ChangeCartSlot: failed to get delivery id=%d: %v", requested.DeliveryID, err)
			return fmt.Errorf("%w: failed to get delivery: %v", ErrInternal, err)
		}

		occupancy, err := uc.slotRepo.Occupancy(txCtx, requested.ID)
		if err != nil {
			uc.logger.Error("ChangeCartSlot: failed to count slot id=%d occupancy: %v", requested.ID, err)
			return fmt.Errorf("%w: failed to count occupancy: %v", ErrInternal, err)
		}

		occ := domain.SlotOccupancy{Slot: *requested, CartCount: occupancy}
		if err := domain.ValidateSlotChange(cart, &occ, delivery.MaxPerSlot); err != nil {
			uc.logger.Warn("ChangeCartSlot: slot id=%d rejected, %d/%d spots taken",
				requested.ID, occupancy, delivery.MaxPerSlot)
			return ErrSlotFull
		}

		// 3.5. Переносим корзину
		if err := uc.cartRepo.UpdateSlot(txCtx, cart.ID, requested.ID); err != nil {
			uc.logger.Error("ChangeCartSlot: failed to update cart id=%d: %v", cart.ID, err)
			return fmt.Errorf("%w: failed to update cart: %v", ErrInternal, err)
		}

		result = &Response{
			CartID:    cart.ID,
			SlotID:    requested.ID,
			SlotStart: requested.Start,
			SlotEnd:   requested.End,
			Changed:   true,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ChangeCartSlot: cart id=%d now in slot id=%d (changed=%t)",
		result.CartID, result.SlotID, result.Changed)
	return result, nil
}
