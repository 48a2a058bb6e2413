package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultWeekCellMaxVisible  = 2 // сколько записей показывает ячейка недельной сетки
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinHorizonMonths       = 1
	MaxHorizonMonths       = 12
)

// HorizonOptions допустимые значения горизонта для генерации "на будущее"
var HorizonOptions = []int{1, 3, 6, 12}

// IsValidHorizon проверяет, что горизонт входит в список допустимых
func IsValidHorizon(months int) bool {
	for _, m := range HorizonOptions {
		if m == months {
			return true
		}
	}
	return false
}

// ConflictPolicy политика обработки уже материализованных слотов при генерации
type ConflictPolicy string

const (
	// ConflictSkip пропускает существующие слоты (политика по умолчанию)
	ConflictSkip ConflictPolicy = "skip"
	// ConflictReplace перезаписывает существующие слоты
	ConflictReplace ConflictPolicy = "replace"
)

// IsValid проверяет, что политика входит в список поддерживаемых
func (p ConflictPolicy) IsValid() bool {
	return p == ConflictSkip || p == ConflictReplace
}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов записей, не занимающих слот
// Используется при фильтрации записей для раскладки календаря
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
