package delivery

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

// Repository репозиторий для работы с доставками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доставок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает доставку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Delivery, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "location_id", "max_per_slot").
		From("deliveries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.Delivery
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.LocationID, &d.MaxPerSlot)
	if err == sql.ErrNoRows {
		return nil, ErrDeliveryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan delivery: %v", ErrScanRow, err)
	}

	return &d, nil
}

// ListUpcoming получает предстоящие доставки: те, чей самый ранний слот
// начинается не раньше указанного момента. Доставки без слотов в выдачу
// не попадают (им не во что заказывать)
func (r *Repository) ListUpcoming(ctx context.Context, from time.Time) ([]domain.DeliveryListing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"d.id",
		"d.location_id",
		"d.max_per_slot",
		"l.name",
		"MIN(s.start_at) AS first_slot_start",
	).
		From("deliveries d").
		Join("delivery_locations l ON l.id = d.location_id").
		LeftJoin("delivery_slots s ON s.delivery_id = d.id").
		GroupBy("d.id", "d.location_id", "d.max_per_slot", "l.name").
		Having(squirrel.GtOrEq{"MIN(s.start_at)": from}).
		OrderBy("first_slot_start ASC", "d.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	listings := make([]domain.DeliveryListing, 0)
	for rows.Next() {
		var listing domain.DeliveryListing
		var firstSlotStart sql.NullTime

		err := rows.Scan(
			&listing.ID,
			&listing.LocationID,
			&listing.MaxPerSlot,
			&listing.LocationName,
			&firstSlotStart,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListUpcoming - scan row: %v", ErrScanRow, err)
		}

		if firstSlotStart.Valid {
			start := firstSlotStart.Time
			listing.FirstSlotStart = &start
		}

		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - rows error: %v", ErrScanRow, err)
	}

	return listings, nil
}

// ListLegacy получает доставки, все еще несущие интервальные поля
// (дослотовая схема); источник данных для миграции слотов
func (r *Repository) ListLegacy(ctx context.Context) ([]domain.LegacyDelivery, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"max_per_slot",
		"legacy_start",
		"legacy_end",
		"legacy_interval_minutes",
	).
		From("deliveries").
		Where("legacy_start IS NOT NULL").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLegacy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLegacy - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	deliveries := make([]domain.LegacyDelivery, 0)
	for rows.Next() {
		var d domain.LegacyDelivery
		err := rows.Scan(&d.ID, &d.LocationID, &d.MaxPerSlot, &d.Start, &d.End, &d.IntervalMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: ListLegacy - scan row: %v", ErrScanRow, err)
		}
		deliveries = append(deliveries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLegacy - rows error: %v", ErrScanRow, err)
	}

	return deliveries, nil
}

// ListIDs получает идентификаторы всех доставок (используется откатом миграции)
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("deliveries").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// ClearLegacyFields обнуляет интервальные поля доставки после переноса в слоты
func (r *Repository) ClearLegacyFields(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("deliveries").
		Set("legacy_start", nil).
		Set("legacy_end", nil).
		Set("legacy_interval_minutes", nil).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearLegacyFields - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClearLegacyFields - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ClearLegacyFields - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDeliveryNotFound
	}

	return nil
}

// UpdateLegacyFields восстанавливает интервальные поля доставки (откат миграции)
func (r *Repository) UpdateLegacyFields(ctx context.Context, id int64, legacy domain.LegacyInterval) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("deliveries").
		Set("legacy_start", legacy.Start).
		Set("legacy_end", legacy.End).
		Set("legacy_interval_minutes", legacy.IntervalMinutes).
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
		return ErrDeliveryNotFound
	}

	return nil
}
