package requests

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос не найден
	ErrRequestNotFound = errors.New("request not found")

	// ErrAlreadyComplete возвращается при попытке подтвердить уже завершённый запрос
	ErrAlreadyComplete = errors.New("request already complete")

	// ErrNotComplete возвращается при попытке обработать незавершённый запрос
	ErrNotComplete = errors.New("request is not complete")

	// ErrAlreadyResolved возвращается, когда запрос уже принят или отклонён
	ErrAlreadyResolved = errors.New("request already resolved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
