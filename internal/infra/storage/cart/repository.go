package cart

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	"github.com/m04kA/SMC-BasketService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BasketService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с корзинами и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория корзин
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую корзину
// Если в контексте передана активная транзакция, использует её — при
// создании корзины с проверкой вместимости слота это обязательно,
// иначе конкурентные запросы могут переполнить слот
func (r *Repository) Create(ctx context.Context, c *domain.Cart) (*domain.Cart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("carts").
		Columns("user_id", "slot_id", "status", "annotation").
		Values(c.UserID, c.SlotID, c.Status, c.Annotation).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает корзину по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Cart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"slot_id",
		"status",
		"annotation",
		"created_at",
		"updated_at",
	).
		From("carts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Cart
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.UserID,
		&c.SlotID,
		&c.Status,
		&c.Annotation,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan cart: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// UpdateSlot переносит корзину в другой слот
func (r *Repository) UpdateSlot(ctx context.Context, id int64, slotID int64) error {
	return r.update(ctx, "UpdateSlot", id, map[string]interface{}{"slot_id": slotID})
}

// UpdateStatus обновляет статус корзины
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.CartStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{"status": status})
}

// UpdateAnnotation обновляет аннотацию корзины
func (r *Repository) UpdateAnnotation(ctx context.Context, id int64, annotation string) error {
	return r.update(ctx, "UpdateAnnotation", id, map[string]interface{}{"annotation": annotation})
}

func (r *Repository) update(ctx context.Context, op string, id int64, fields map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("carts").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	for column, value := range fields {
		updateBuilder = updateBuilder.Set(column, value)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrCartNotFound
	}

	return nil
}

// ListActiveByDelivery получает активные корзины доставки (status <= prepared),
// упорядоченные по началу слота
func (r *Repository) ListActiveByDelivery(ctx context.Context, deliveryID int64) ([]*domain.Cart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"c.id",
		"c.user_id",
		"c.slot_id",
		"c.status",
		"c.annotation",
		"c.created_at",
		"c.updated_at",
	).
		From("carts c").
		Join("delivery_slots s ON s.id = c.slot_id").
		Where(squirrel.Eq{"s.delivery_id": deliveryID}).
		Where(squirrel.LtOrEq{"c.status": domain.StatusPrepared}).
		OrderBy("s.start_at ASC", "s.id ASC", "c.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDelivery - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDelivery - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCarts(rows)
}

// AddItem добавляет позицию в корзину
func (r *Repository) AddItem(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cart_items").
		Columns("cart_id", "label", "unit_price", "unit_type", "quantity").
		Values(item.CartID, item.Label, item.UnitPrice, item.UnitType, item.Quantity).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddItem - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("%w: AddItem - execute insert: %v", ErrExecQuery, err)
	}

	return item, nil
}

// DeleteItem удаляет позицию корзины
// cartID участвует в условии, чтобы нельзя было удалить позицию чужой корзины
func (r *Repository) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cart_items").
		Where(squirrel.Eq{"id": itemID, "cart_id": cartID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteItem - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteItem - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteItem - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ListItems получает позиции корзины
func (r *Repository) ListItems(ctx context.Context, cartID int64) ([]*domain.CartItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "cart_id", "label", "unit_price", "unit_type", "quantity").
		From("cart_items").
		Where(squirrel.Eq{"cart_id": cartID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

// ListActiveItemsByDelivery получает позиции всех активных корзин доставки
// Используется отчетом о необходимых количествах
func (r *Repository) ListActiveItemsByDelivery(ctx context.Context, deliveryID int64) ([]*domain.CartItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"i.id",
		"i.cart_id",
		"i.label",
		"i.unit_price",
		"i.unit_type",
		"i.quantity",
	).
		From("cart_items i").
		Join("carts c ON c.id = i.cart_id").
		Join("delivery_slots s ON s.id = c.slot_id").
		Where(squirrel.Eq{"s.delivery_id": deliveryID}).
		Where(squirrel.LtOrEq{"c.status": domain.StatusPrepared}).
		OrderBy("i.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveItemsByDelivery - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveItemsByDelivery - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanItems(rows)
}

// SlottedCart пара корзина-слот; достаточно для восстановления
// дослотовых полей при откате миграции
type SlottedCart struct {
	ID     int64
	SlotID int64
}

// ListSlottedByDelivery получает все корзины доставки, привязанные к ее
// слотам, независимо от статуса
func (r *Repository) ListSlottedByDelivery(ctx context.Context, deliveryID int64) ([]SlottedCart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("c.id", "c.slot_id").
		From("carts c").
		Join("delivery_slots s ON s.id = c.slot_id").
		Where(squirrel.Eq{"s.delivery_id": deliveryID}).
		OrderBy("c.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSlottedByDelivery - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlottedByDelivery - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	carts := make([]SlottedCart, 0)
	for rows.Next() {
		var c SlottedCart
		if err := rows.Scan(&c.ID, &c.SlotID); err != nil {
			return nil, fmt.Errorf("%w: ListSlottedByDelivery - scan row: %v", ErrScanRow, err)
		}
		carts = append(carts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlottedByDelivery - rows error: %v", ErrScanRow, err)
	}

	return carts, nil
}

// LegacyCart корзина эпохи интервальных доставок: прямая ссылка на доставку
// и выбранное клиентом время вместо ссылки на слот
type LegacyCart struct {
	ID    int64
	Start time.Time
}

// ListLegacyByDelivery получает корзины, привязанные к доставке напрямую
// (дослотовая схема), с выбранным временем
func (r *Repository) ListLegacyByDelivery(ctx context.Context, deliveryID int64) ([]LegacyCart, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "legacy_start").
		From("carts").
		Where(squirrel.Eq{"legacy_delivery_id": deliveryID}).
		Where("legacy_start IS NOT NULL").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLegacyByDelivery - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLegacyByDelivery - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	carts := make([]LegacyCart, 0)
	for rows.Next() {
		var c LegacyCart
		if err := rows.Scan(&c.ID, &c.Start); err != nil {
			return nil, fmt.Errorf("%w: ListLegacyByDelivery - scan row: %v", ErrScanRow, err)
		}
		carts = append(carts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLegacyByDelivery - rows error: %v", ErrScanRow, err)
	}

	return carts, nil
}

// UpdateLegacyFields восстанавливает дослотовые поля корзины (откат миграции)
func (r *Repository) UpdateLegacyFields(ctx context.Context, id int64, deliveryID int64, start time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("carts").
		Set("legacy_delivery_id", deliveryID).
		Set("legacy_start", start).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLegacyFields - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLegacyFields - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLegacyFields - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCartNotFound
	}

	return nil
}

// scanCarts сканирует результаты запроса в слайс корзин
func (r *Repository) scanCarts(rows *sql.Rows) ([]*domain.Cart, error) {
	carts := make([]*domain.Cart, 0)

	for rows.Next() {
		var c domain.Cart
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.SlotID,
			&c.Status,
			&c.Annotation,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanCarts - scan row: %v", ErrScanRow, err)
		}

		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time

		carts = append(carts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCarts - rows error: %v", ErrScanRow, err)
	}

	return carts, nil
}

// scanItems сканирует результаты запроса в слайс позиций
func (r *Repository) scanItems(rows *sql.Rows) ([]*domain.CartItem, error) {
	items := make([]*domain.CartItem, 0)

	for rows.Next() {
		var item domain.CartItem
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.Label,
			&item.UnitPrice,
			&item.UnitType,
			&item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
