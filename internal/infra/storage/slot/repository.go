package slot

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

// Repository репозиторий для работы со слотами доставки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
// Внутри транзакции строка слота блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "delivery_id", "start_at", "end_at").
		From("delivery_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.DeliveryID, &s.Start, &s.End)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListOccupancyByDelivery возвращает слоты доставки вместе с количеством
// привязанных корзин, упорядоченные по началу слота (затем по id).
// Внутри транзакции строки слотов сначала блокируются (FOR UPDATE), чтобы
// конкурентный выбор слота не переполнил лимит корзин
func (r *Repository) ListOccupancyByDelivery(ctx context.Context, deliveryID int64) ([]domain.SlotOccupancy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		if err := r.lockByDelivery(ctx, executor, deliveryID); err != nil {
			return nil, err
		}
	}

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.delivery_id",
		"s.start_at",
		"s.end_at",
		"COUNT(c.id)",
	).
		From("delivery_slots s").
		LeftJoin("carts c ON c.slot_id = s.id").
		Where(squirrel.Eq{"s.delivery_id": deliveryID}).
		GroupBy("s.id", "s.delivery_id", "s.start_at", "s.end_at").
		OrderBy("s.start_at ASC", "s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupancyByDelivery - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupancyByDelivery - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancies := make([]domain.SlotOccupancy, 0)
	for rows.Next() {
		var o domain.SlotOccupancy
		if err := rows.Scan(&o.Slot.ID, &o.Slot.DeliveryID, &o.Slot.Start, &o.Slot.End, &o.CartCount); err != nil {
			return nil, fmt.Errorf("%w: ListOccupancyByDelivery - scan row: %v", ErrScanRow, err)
		}
		occupancies = append(occupancies, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupancyByDelivery - rows error: %v", ErrScanRow, err)
	}

	return occupancies, nil
}

// Occupancy возвращает количество корзин, привязанных к слоту
// Внутри транзакции строка слота сначала блокируется (FOR UPDATE)
func (r *Repository) Occupancy(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if dbmetrics.IsInTransaction(ctx) {
		if err := r.lockByID(ctx, executor, slotID); err != nil {
			return 0, err
		}
	}

	query, args, err := psqlbuilder.Select("COUNT(id)").
		From("carts").
		Where(squirrel.Eq{"slot_id": slotID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Occupancy - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Occupancy - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListByDelivery получает слоты доставки без счетчиков занятости
// (используется откатом миграции)
func (r *Repository) ListByDelivery(ctx context.Context, deliveryID int64) ([]domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "delivery_id", "start_at", "end_at").
		From("delivery_slots").
		Where(squirrel.Eq{"delivery_id": deliveryID}).
		OrderBy("start_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDelivery - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDelivery - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.DeliveryID, &s.Start, &s.End); err != nil {
			return nil, fmt.Errorf("%w: ListByDelivery - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDelivery - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Create создает новый слот (используется миграцией интервальных доставок)
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("delivery_slots").
		Columns("delivery_id", "start_at", "end_at").
		Values(s.DeliveryID, s.Start, s.End).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// UpdateBounds обновляет границы слота
func (r *Repository) UpdateBounds(ctx context.Context, id int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("delivery_slots").
		Set("start_at", start).
		Set("end_at", end).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateBounds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateBounds - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBounds - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteByDelivery удаляет все слоты доставки (используется откатом миграции)
func (r *Repository) DeleteByDelivery(ctx context.Context, deliveryID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("delivery_slots").
		Where(squirrel.Eq{"delivery_id": deliveryID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByDelivery - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByDelivery - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// lockByDelivery блокирует строки слотов доставки до конца транзакции
func (r *Repository) lockByDelivery(ctx context.Context, executor DBExecutor, deliveryID int64) error {
	query, args, err := psqlbuilder.Select("id").
		From("delivery_slots").
		Where(squirrel.Eq{"delivery_id": deliveryID}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: lockByDelivery - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: lockByDelivery - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: lockByDelivery - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// lockByID блокирует строку слота до конца транзакции
func (r *Repository) lockByID(ctx context.Context, executor DBExecutor, id int64) error {
	query, args, err := psqlbuilder.Select("id").
		From("delivery_slots").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: lockByID - build select query: %v", ErrBuildQuery, err)
	}

	var locked int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&locked)
	if err == sql.ErrNoRows {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: lockByID - scan id: %v", ErrScanRow, err)
	}

	return nil
}
