package generate_future

import "errors"

var (
	// ErrNoActiveRules возвращается, когда у профессионала нет активных правил
	ErrNoActiveRules = errors.New("professional has no active availability rules")

	// ErrInvalidHorizon возвращается при горизонте вне списка поддерживаемых (1, 3, 6, 12)
	ErrInvalidHorizon = errors.New("horizon must be one of 1, 3, 6 or 12 months")

	// ErrInvalidPolicy возвращается при неизвестной политике обработки конфликтов
	ErrInvalidPolicy = errors.New("onConflict must be \"skip\" or \"replace\"")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
