package request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос не найден
	ErrRequestNotFound = errors.New("request.repository: request not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("request.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("request.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("request.repository: failed to scan row")
)
