package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func ev(id int64, startH, startM, endH, endM int) Event {
	return Event{ID: id, Start: at(startH, startM), End: at(endH, endM)}
}

// assertValidLayout проверяет структурные инварианты любой корректной раскладки
func assertValidLayout(t *testing.T, events []Event, assignments map[int64]Assignment, total int) {
	t.Helper()

	byID := make(map[int64]Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	for id, a := range assignments {
		assert.Equal(t, total, a.TotalColumns, "totalColumns for event %d", id)
		assert.GreaterOrEqual(t, a.Column, 0)
		assert.Less(t, a.Column, total)
	}

	// Никакие два события одной колонки не пересекаются во времени
	for idA, a := range assignments {
		for idB, b := range assignments {
			if idA >= idB || a.Column != b.Column {
				continue
			}
			evA, evB := byID[idA], byID[idB]
			assert.False(t, evA.Start.Before(evB.End) && evA.End.After(evB.Start),
				"events %d and %d share column %d but overlap", idA, idB, a.Column)
		}
	}
}

func TestAssign_ChainOfThreeNeedsThreeColumns(t *testing.T) {
	// A [9:00,10:00), B [9:30,10:30), C [9:45,11:00) попарно пересекаются цепочкой:
	// все три идут одновременно в 9:45-10:00, нужны ровно 3 колонки
	events := []Event{
		ev(1, 9, 0, 10, 0),
		ev(2, 9, 30, 10, 30),
		ev(3, 9, 45, 11, 0),
	}

	assignments, total := Assign(events)

	assert.Equal(t, 3, total)
	require.Len(t, assignments, 3)
	assertValidLayout(t, events, assignments, total)
}

func TestAssign_DisjointEventsUseOneColumn(t *testing.T) {
	events := make([]Event, 0, 10)
	for i := 0; i < 10; i++ {
		events = append(events, ev(int64(i+1), 8+i, 0, 8+i, 45))
	}

	assignments, total := Assign(events)

	assert.Equal(t, 1, total)
	for id, a := range assignments {
		assert.Equal(t, 0, a.Column, "event %d", id)
		assert.Equal(t, 1, a.TotalColumns)
	}
}

func TestAssign_TouchingBoundariesShareColumn(t *testing.T) {
	// Конец одного события == начало следующего: пересечения нет, колонка одна
	events := []Event{
		ev(1, 9, 0, 10, 0),
		ev(2, 10, 0, 11, 0),
		ev(3, 11, 0, 12, 0),
	}

	_, total := Assign(events)
	assert.Equal(t, 1, total)
}

func TestAssign_LaterEventReusesFreedColumn(t *testing.T) {
	// Две параллельные записи утром, одна после - вторая колонка освобождается
	events := []Event{
		ev(1, 9, 0, 10, 0),
		ev(2, 9, 0, 10, 0),
		ev(3, 10, 30, 11, 30),
	}

	assignments, total := Assign(events)

	assert.Equal(t, 2, total)
	assert.Equal(t, 0, assignments[3].Column)
	assertValidLayout(t, events, assignments, total)
}

func TestAssign_FullPairwiseCheckNotJustLastEvent(t *testing.T) {
	// Колонка 0 содержит [9:00,10:00) и затем [11:00,12:00).
	// Событие [9:30,11:30) не пересекается с последним в колонке, но пересекается
	// с первым - проверка только последнего события положила бы его неверно
	events := []Event{
		ev(1, 9, 0, 10, 0),
		ev(2, 9, 15, 11, 10),
		ev(3, 11, 0, 12, 0), // помещается в колонку 0 после события 1
		ev(4, 9, 30, 11, 30),
	}

	assignments, total := Assign(events)
	assertValidLayout(t, events, assignments, total)

	// Максимум одновременно идущих: события 1, 2, 4 в 9:30-10:00 => 3 колонки
	assert.Equal(t, 3, total)
}

func TestAssign_ColumnsEqualMaxSimultaneousOverlap(t *testing.T) {
	// Пять событий, максимум три пересекаются в любой момент
	events := []Event{
		ev(1, 9, 0, 12, 0),
		ev(2, 9, 30, 10, 30),
		ev(3, 10, 0, 11, 0),
		ev(4, 10, 45, 11, 45),
		ev(5, 12, 0, 13, 0),
	}

	assignments, total := Assign(events)

	assert.Equal(t, 3, total)
	assertValidLayout(t, events, assignments, total)
}

func TestAssign_StableOrderOnEqualStart(t *testing.T) {
	// При одинаковом начале порядок колонок следует исходному порядку событий
	events := []Event{
		ev(10, 9, 0, 10, 0),
		ev(20, 9, 0, 10, 0),
		ev(30, 9, 0, 10, 0),
	}

	assignments, total := Assign(events)

	assert.Equal(t, 3, total)
	assert.Equal(t, 0, assignments[10].Column)
	assert.Equal(t, 1, assignments[20].Column)
	assert.Equal(t, 2, assignments[30].Column)
}

func TestAssign_Empty(t *testing.T) {
	assignments, total := Assign(nil)
	assert.Empty(t, assignments)
	assert.Equal(t, 0, total)
}
