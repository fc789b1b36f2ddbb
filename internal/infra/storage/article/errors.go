package article

import "errors"

var (
	// ErrArticleNotFound возвращается, когда товар не найден в каталоге
	ErrArticleNotFound = errors.New("article.repository: article not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("article.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("article.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("article.repository: failed to scan row")
)
