package generate_next_month

import "errors"

var (
	// ErrNoActiveRules возвращается, когда у профессионала нет активных правил
	ErrNoActiveRules = errors.New("professional has no active availability rules")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
