package generation

import "errors"

var (
	// ErrNoActiveRules возвращается, когда у профессионала нет активных правил,
	// из которых можно материализовать слоты
	ErrNoActiveRules = errors.New("professional has no active availability rules")

	// ErrInvalidRule возвращается, когда правило не проходит валидацию временных параметров
	ErrInvalidRule = errors.New("invalid availability rule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("generation service: internal error")
)
