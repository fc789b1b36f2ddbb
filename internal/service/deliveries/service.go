package deliveries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	deliveryRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/delivery"
	"github.com/m04kA/SMC-BasketService/internal/service/deliveries/models"
)

// Service сервис витрины доставок и отчетов сборщика
type Service struct {
	deliveryRepo DeliveryRepository
	slotRepo     SlotRepository
	cartRepo     CartRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса доставок
func NewService(
	deliveryRepo DeliveryRepository,
	slotRepo SlotRepository,
	cartRepo CartRepository,
	logger Logger,
) *Service {
	return &Service{
		deliveryRepo: deliveryRepo,
		slotRepo:     slotRepo,
		cartRepo:     cartRepo,
		logger:       logger,
	}
}

// ListUpcoming получает предстоящие доставки со слотами и занятостью.
// Заполненность отдается структурно (isFull на слоте и на доставке),
// форматирование — забота клиента
func (s *Service) ListUpcoming(ctx context.Context, now time.Time) (*models.DeliveryListResponse, error) {
	s.logger.Info("ListUpcoming: fetching deliveries from %s", now.Format(domain.DateTimeFormat))

	listings, err := s.deliveryRepo.ListUpcoming(ctx, now)
	if err != nil {
		s.logger.Error("ListUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	resp := &models.DeliveryListResponse{
		Deliveries: make([]models.DeliveryResponse, 0, len(listings)),
	}

	for _, listing := range listings {
		occupancies, err := s.slotRepo.ListOccupancyByDelivery(ctx, listing.ID)
		if err != nil {
			s.logger.Error("ListUpcoming: failed to list slots of delivery id=%d: %v", listing.ID, err)
			return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
		}

		d := models.DeliveryResponse{
			ID:             listing.ID,
			LocationName:   listing.LocationName,
			MaxPerSlot:     listing.MaxPerSlot,
			IsFull:         domain.DeliveryIsFull(listing.MaxPerSlot, occupancies),
			FirstSlotStart: listing.FirstSlotStart,
			Slots:          make([]models.SlotResponse, 0, len(occupancies)),
		}
		for _, o := range occupancies {
			d.Slots = append(d.Slots, models.FromDomainOccupancy(o, listing.MaxPerSlot))
		}

		resp.Deliveries = append(resp.Deliveries, d)
	}

	s.logger.Info("ListUpcoming: %d deliveries", len(resp.Deliveries))
	return resp, nil
}

// NeededQuantities собирает отчет сборщика: сколько какого товара нужно
// на все активные корзины доставки, с группировкой по (label, unit type)
func (s *Service) NeededQuantities(ctx context.Context, deliveryID int64) (*models.NeededQuantitiesResponse, error) {
	s.logger.Info("NeededQuantities: delivery id=%d", deliveryID)

	if _, err := s.getDelivery(ctx, "NeededQuantities", deliveryID); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListActiveItemsByDelivery(ctx, deliveryID)
	if err != nil {
		s.logger.Error("NeededQuantities: failed to list items of delivery id=%d: %v", deliveryID, err)
		return nil, fmt.Errorf("%w: NeededQuantities - repository error: %v", ErrInternal, err)
	}

	lines := domain.SumNeededQuantities(items)
	s.logger.Info("NeededQuantities: delivery id=%d, %d lines", deliveryID, len(lines))
	return models.FromDomainNeededQuantities(deliveryID, lines), nil
}

// PreparationBoard получает активные корзины доставки, сгруппированные по
// слотам в порядке начала слота. Слоты без активных корзин опускаются
func (s *Service) PreparationBoard(ctx context.Context, deliveryID int64) (*models.PreparationBoardResponse, error) {
	s.logger.Info("PreparationBoard: delivery id=%d", deliveryID)

	if _, err := s.getDelivery(ctx, "PreparationBoard", deliveryID); err != nil {
		return nil, err
	}

	occupancies, err := s.slotRepo.ListOccupancyByDelivery(ctx, deliveryID)
	if err != nil {
		s.logger.Error("PreparationBoard: failed to list slots of delivery id=%d: %v", deliveryID, err)
		return nil, fmt.Errorf("%w: PreparationBoard - repository error: %v", ErrInternal, err)
	}

	carts, err := s.cartRepo.ListActiveByDelivery(ctx, deliveryID)
	if err != nil {
		s.logger.Error("PreparationBoard: failed to list carts of delivery id=%d: %v", deliveryID, err)
		return nil, fmt.Errorf("%w: PreparationBoard - repository error: %v", ErrInternal, err)
	}

	cartsBySlot := make(map[int64][]*domain.Cart)
	for _, c := range carts {
		if c.SlotID == nil {
			continue
		}
		cartsBySlot[*c.SlotID] = append(cartsBySlot[*c.SlotID], c)
	}

	resp := &models.PreparationBoardResponse{
		DeliveryID: deliveryID,
		Slots:      make([]models.BoardSlotResponse, 0, len(occupancies)),
	}

	// occupancies приходят упорядоченными по началу слота
	for _, o := range occupancies {
		slotCarts := cartsBySlot[o.Slot.ID]
		if len(slotCarts) == 0 {
			continue
		}
		group := models.BoardSlotResponse{
			SlotID: o.Slot.ID,
			Start:  o.Slot.Start,
			End:    o.Slot.End,
			Carts:  make([]models.BoardCartResponse, 0, len(slotCarts)),
		}
		for _, c := range slotCarts {
			group.Carts = append(group.Carts, models.FromDomainBoardCart(c))
		}
		resp.Slots = append(resp.Slots, group)
	}

	s.logger.Info("PreparationBoard: delivery id=%d, %d slots with carts", deliveryID, len(resp.Slots))
	return resp, nil
}

// getDelivery получает доставку, транслируя "не найдено" в ошибку сервиса
func (s *Service) getDelivery(ctx context.Context, op string, id int64) (*domain.Delivery, error) {
	delivery, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, deliveryRepo.ErrDeliveryNotFound) {
			s.logger.Warn("%s: delivery id=%d not found", op, id)
			return nil, ErrDeliveryNotFound
		}
		s.logger.Error("%s: failed to get delivery id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return delivery, nil
}
