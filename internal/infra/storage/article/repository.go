package article

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BasketService/internal/domain"
	"github.com/m04kA/SMC-BasketService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BasketService/pkg/psqlbuilder"
)

// Repository репозиторий каталога товаров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает товар по ID
// Используется при добавлении позиции в корзину: название, цена и тип
// единицы копируются в позицию и дальше живут своей жизнью
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "code", "label", "unit_price", "unit_type").
		From("articles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var a domain.Article
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Code, &a.Label, &a.UnitPrice, &a.UnitType)
	if err == sql.ErrNoRows {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan article: %v", ErrScanRow, err)
	}

	return &a, nil
}

// List получает весь каталог, упорядоченный по коду
func (r *Repository) List(ctx context.Context) ([]*domain.Article, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "code", "label", "unit_price", "unit_type").
		From("articles").
		OrderBy("code ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	articles := make([]*domain.Article, 0)
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Code, &a.Label, &a.UnitPrice, &a.UnitType); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		articles = append(articles, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return articles, nil
}
