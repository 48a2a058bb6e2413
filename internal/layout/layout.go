package layout

import (
	"sort"
	"time"
)

// Пакет layout раскладывает пересекающиеся по времени записи по колонкам
// дневного/недельного календаря так, чтобы записи в одной колонке не пересекались.
//
// Жадная раскраска интервального графа: события сортируются по началу и каждое
// кладется в первую совместимую колонку. Для интервальных графов жадная стратегия
// оптимальна - число колонок равно максимальному числу одновременно идущих событий.

// Event одно событие календаря (запись) с границами во времени
type Event struct {
	ID    int64
	Start time.Time
	End   time.Time
}

// Assignment позиция события в сетке: колонка и общее число колонок
// TotalColumns одинаков у всех событий одного набора - ширина ячеек сетки едина
type Assignment struct {
	Column       int
	TotalColumns int
}

// Assign распределяет события по минимальному числу колонок
// Возвращает назначение для каждого события и итоговое число колонок
func Assign(events []Event) (map[int64]Assignment, int) {
	assignments := make(map[int64]Assignment, len(events))
	if len(events) == 0 {
		return assignments, 0
	}

	// Стабильная сортировка: при равном начале сохраняется исходный порядок
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	columns := make([][]Event, 0)
	columnOf := make(map[int64]int, len(events))

	for _, ev := range sorted {
		placed := false
		for col := range columns {
			// Событие должно быть совместимо с КАЖДЫМ событием колонки, не только
			// с последним: при цепочке частично пересекающихся событий позднее
			// событие может пересекаться с положенным двумя шагами раньше
			if fitsColumn(ev, columns[col]) {
				columns[col] = append(columns[col], ev)
				columnOf[ev.ID] = col
				placed = true
				break
			}
		}

		if !placed {
			columns = append(columns, []Event{ev})
			columnOf[ev.ID] = len(columns) - 1
		}
	}

	total := len(columns)
	for id, col := range columnOf {
		assignments[id] = Assignment{Column: col, TotalColumns: total}
	}

	return assignments, total
}

// fitsColumn проверяет, что событие не пересекается ни с одним событием колонки
// Полуоткрытая семантика: касание границ пересечением не считается
func fitsColumn(ev Event, column []Event) bool {
	for _, existing := range column {
		if overlaps(ev, existing) {
			return false
		}
	}
	return true
}

// overlaps проверяет реальное пересечение двух событий во времени
func overlaps(a, b Event) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}
