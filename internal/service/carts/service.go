package carts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	cartRepo "github.com/m04kA/SMC-BasketService/internal/infra/storage/cart"
	"github.com/m04kA/SMC-BasketService/internal/service/carts/models"
)

// Service сервис для работы с содержимым корзин
type Service struct {
	cartRepo    CartRepository
	articleRepo ArticleRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса корзин
func NewService(cartRepo CartRepository, articleRepo ArticleRepository, logger Logger) *Service {
	return &Service{
		cartRepo:    cartRepo,
		articleRepo: articleRepo,
		logger:      logger,
	}
}

// GetByID получает корзину с позициями и итоговой суммой
// Пользователь видит только собственную корзину
func (s *Service) GetByID(ctx context.Context, cartID int64, userID int64) (*models.CartResponse, error) {
	s.logger.Info("GetByID: fetching cart id=%d for user=%d", cartID, userID)

	cart, err := s.getOwnedCart(ctx, "GetByID", cartID, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListItems(ctx, cartID)
	if err != nil {
		s.logger.Error("GetByID: failed to list items of cart id=%d: %v", cartID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCart(cart, items), nil
}

// AddItem добавляет позицию в корзину. Label, цена и тип единицы
// копируются из каталога в момент добавления и больше не пересматриваются:
// изменение каталога не трогает существующие корзины
func (s *Service) AddItem(ctx context.Context, cartID int64, req *models.AddItemRequest) (*models.CartItemResponse, error) {
	s.logger.Info("AddItem: cart=%d, article=%d, quantity=%s by user=%d",
		cartID, req.ArticleID, req.Quantity, req.UserID)

	if !req.Quantity.IsPositive() {
		s.logger.Warn("AddItem: non-positive quantity %s for cart id=%d", req.Quantity, cartID)
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	if _, err := s.getMutableCart(ctx, "AddItem", cartID, req.UserID); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.GetByID(ctx, req.ArticleID)
	if err != nil {
		s.logger.Warn("AddItem: article id=%d not found: %v", req.ArticleID, err)
		return nil, ErrArticleNotFound
	}

	item := &domain.CartItem{
		CartID:    cartID,
		Label:     article.Label,
		UnitPrice: article.UnitPrice,
		UnitType:  article.UnitType,
		Quantity:  req.Quantity,
	}

	created, err := s.cartRepo.AddItem(ctx, item)
	if err != nil {
		s.logger.Error("AddItem: failed to add item to cart id=%d: %v", cartID, err)
		return nil, fmt.Errorf("%w: AddItem - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddItem: item id=%d added to cart id=%d", created.ID, cartID)
	resp := models.FromDomainItem(created)
	return &resp, nil
}

// RemoveItem удаляет позицию из корзины
func (s *Service) RemoveItem(ctx context.Context, cartID int64, itemID int64, userID int64) error {
	s.logger.Info("RemoveItem: cart=%d, item=%d by user=%d", cartID, itemID, userID)

	if _, err := s.getMutableCart(ctx, "RemoveItem", cartID, userID); err != nil {
		return err
	}

	if err := s.cartRepo.DeleteItem(ctx, cartID, itemID); err != nil {
		if errors.Is(err, cartRepo.ErrItemNotFound) {
			s.logger.Warn("RemoveItem: item id=%d not found in cart id=%d", itemID, cartID)
			return ErrItemNotFound
		}
		s.logger.Error("RemoveItem: failed to delete item id=%d: %v", itemID, err)
		return fmt.Errorf("%w: RemoveItem - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveItem: item id=%d removed from cart id=%d", itemID, cartID)
	return nil
}

// UpdateAnnotation обновляет комментарий к корзине
func (s *Service) UpdateAnnotation(ctx context.Context, cartID int64, req *models.UpdateAnnotationRequest) error {
	s.logger.Info("UpdateAnnotation: cart=%d by user=%d", cartID, req.UserID)

	if len(req.Annotation) > domain.MaxAnnotationLength {
		s.logger.Warn("UpdateAnnotation: annotation too long (%d) for cart id=%d",
			len(req.Annotation), cartID)
		return fmt.Errorf("%w: annotation exceeds %d characters", ErrInvalidInput, domain.MaxAnnotationLength)
	}

	if _, err := s.getMutableCart(ctx, "UpdateAnnotation", cartID, req.UserID); err != nil {
		return err
	}

	if err := s.cartRepo.UpdateAnnotation(ctx, cartID, req.Annotation); err != nil {
		s.logger.Error("UpdateAnnotation: failed to update cart id=%d: %v", cartID, err)
		return fmt.Errorf("%w: UpdateAnnotation - repository error: %v", ErrInternal, err)
	}

	return nil
}

// AdvanceStatus применяет действие сборщика к статусу корзины.
// Действия выполняет персонал, поэтому владение корзиной не проверяется;
// допустимость перехода решает таблица переходов домена
func (s *Service) AdvanceStatus(ctx context.Context, cartID int64, req *models.AdvanceStatusRequest) (*models.StatusResponse, error) {
	s.logger.Info("AdvanceStatus: cart=%d, action=%s by user=%d", cartID, req.Action, req.UserID)

	action, ok := domain.ParseCartAction(req.Action)
	if !ok {
		s.logger.Warn("AdvanceStatus: unknown action %q for cart id=%d", req.Action, cartID)
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, cartRepo.ErrCartNotFound) {
			s.logger.Warn("AdvanceStatus: cart id=%d not found", cartID)
			return nil, ErrCartNotFound
		}
		s.logger.Error("AdvanceStatus: failed to get cart id=%d: %v", cartID, err)
		return nil, fmt.Errorf("%w: AdvanceStatus - repository error: %v", ErrInternal, err)
	}

	next, err := cart.Status.Apply(action)
	if err != nil {
		s.logger.Warn("AdvanceStatus: action %s not allowed from status %s for cart id=%d",
			action, cart.Status.Name(), cartID)
		return nil, ErrInvalidTransition
	}

	if err := s.cartRepo.UpdateStatus(ctx, cartID, next); err != nil {
		s.logger.Error("AdvanceStatus: failed to update cart id=%d: %v", cartID, err)
		return nil, fmt.Errorf("%w: AdvanceStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AdvanceStatus: cart id=%d moved %s -> %s", cartID, cart.Status.Name(), next.Name())
	return &models.StatusResponse{
		CartID:         cartID,
		Status:         next.Name(),
		PreviousStatus: cart.Status.Name(),
	}, nil
}

// Вспомогательные методы

// getOwnedCart получает корзину и проверяет, что она принадлежит пользователю
func (s *Service) getOwnedCart(ctx context.Context, op string, cartID int64, userID int64) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, cartRepo.ErrCartNotFound) {
			s.logger.Warn("%s: cart id=%d not found", op, cartID)
			return nil, ErrCartNotFound
		}
		s.logger.Error("%s: failed to get cart id=%d: %v", op, cartID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !cart.IsOwnedBy(userID) {
		s.logger.Warn("%s: cart id=%d belongs to user=%d, not user=%d", op, cartID, cart.UserID, userID)
		return nil, ErrAccessDenied
	}

	return cart, nil
}

// getMutableCart дополнительно отклоняет корзины в терминальном статусе
func (s *Service) getMutableCart(ctx context.Context, op string, cartID int64, userID int64) (*domain.Cart, error) {
	cart, err := s.getOwnedCart(ctx, op, cartID, userID)
	if err != nil {
		return nil, err
	}

	if cart.Status.IsTerminal() {
		s.logger.Warn("%s: cart id=%d is finalized (status=%s)", op, cartID, cart.Status.Name())
		return nil, ErrCartFinalized
	}

	return cart, nil
}
