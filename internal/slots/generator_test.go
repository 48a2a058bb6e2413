package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func mustGenerate(t *testing.T, start, end types.TimeString, duration int, brk *domain.BreakWindow) []domain.Slot {
	t.Helper()
	result, err := Generate(start, end, duration, brk)
	require.NoError(t, err)
	return result
}

func TestGenerate_WorkdayWithLunchBreak(t *testing.T) {
	brk := &domain.BreakWindow{Start: "11:00", End: "13:00"}

	result := mustGenerate(t, "09:00", "16:00", 60, brk)

	require.Len(t, result, 7)

	expected := []struct {
		start  types.TimeString
		end    types.TimeString
		active bool
	}{
		{"09:00", "10:00", true},
		{"10:00", "11:00", true},
		{"11:00", "12:00", false},
		{"12:00", "13:00", false},
		{"13:00", "14:00", true},
		{"14:00", "15:00", true},
		{"15:00", "16:00", true},
	}

	for i, exp := range expected {
		assert.Equal(t, exp.start, result[i].StartTime, "slot %d start", i)
		assert.Equal(t, exp.end, result[i].EndTime, "slot %d end", i)
		assert.Equal(t, exp.active, result[i].IsActive, "slot %d active", i)
	}
}

func TestGenerate_ExactTiling(t *testing.T) {
	// Длительность делит окно нацело: слоты покрывают окно без зазоров и пересечений
	result := mustGenerate(t, "08:00", "12:00", 30, nil)

	require.Len(t, result, 8)
	assert.Equal(t, types.TimeString("08:00"), result[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), result[len(result)-1].EndTime)

	for i := 1; i < len(result); i++ {
		assert.Equal(t, result[i-1].EndTime, result[i].StartTime, "gap between slots %d and %d", i-1, i)
	}
	for _, s := range result {
		assert.Equal(t, 30, s.EndTime.Minutes()-s.StartTime.Minutes())
		assert.True(t, s.IsActive)
	}
}

func TestGenerate_TrailingRemainderDropped(t *testing.T) {
	// Окно 09:00-10:50, слоты по 45 минут: помещаются два, хвост в 20 минут отбрасывается
	result := mustGenerate(t, "09:00", "10:50", 45, nil)

	require.Len(t, result, 2)
	assert.Equal(t, types.TimeString("10:30"), result[1].EndTime)
}

func TestGenerate_DurationLongerThanWindow(t *testing.T) {
	result := mustGenerate(t, "09:00", "10:00", 90, nil)
	assert.Empty(t, result)
}

func TestGenerate_Idempotent(t *testing.T) {
	brk := &domain.BreakWindow{Start: "12:00", End: "13:00"}

	first := mustGenerate(t, "09:00", "18:00", 30, brk)
	second := mustGenerate(t, "09:00", "18:00", 30, brk)

	assert.Equal(t, first, second)
}

func TestGenerate_BreakBoundariesDoNotOverlap(t *testing.T) {
	// Перерыв 12:00-13:00 совпадает ровно с одним слотом:
	// деактивируется только он, граничащие слоты остаются активными
	result := mustGenerate(t, "09:00", "17:00", 60, &domain.BreakWindow{Start: "12:00", End: "13:00"})

	require.Len(t, result, 8)
	for i, s := range result {
		if s.StartTime == "12:00" {
			assert.False(t, s.IsActive, "slot %d inside break", i)
		} else {
			assert.True(t, s.IsActive, "slot %d outside break", i)
		}
	}
}

func TestGenerate_BreakOutsideWindowHasNoEffect(t *testing.T) {
	result := mustGenerate(t, "09:00", "12:00", 60, &domain.BreakWindow{Start: "14:00", End: "15:00"})

	require.Len(t, result, 3)
	for _, s := range result {
		assert.True(t, s.IsActive)
	}
}

func TestGenerate_PartialBreakIntersectionDeactivates(t *testing.T) {
	// Перерыв 10:30-11:30 частично задевает слоты 10:00-11:00 и 11:00-12:00
	result := mustGenerate(t, "09:00", "13:00", 60, &domain.BreakWindow{Start: "10:30", End: "11:30"})

	require.Len(t, result, 4)
	assert.True(t, result[0].IsActive)  // 09:00-10:00
	assert.False(t, result[1].IsActive) // 10:00-11:00
	assert.False(t, result[2].IsActive) // 11:00-12:00
	assert.True(t, result[3].IsActive)  // 12:00-13:00
}

func TestGenerate_ActiveSlotsNeverOverlap(t *testing.T) {
	result := mustGenerate(t, "08:00", "20:00", 25, nil)

	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			assert.False(t, result[i].Overlaps(result[j]),
				"slots %d and %d overlap", i, j)
		}
	}
}

func TestGenerate_InvalidRanges(t *testing.T) {
	tests := []struct {
		name     string
		start    types.TimeString
		end      types.TimeString
		duration int
		brk      *domain.BreakWindow
	}{
		{"start after end", "16:00", "09:00", 60, nil},
		{"start equals end", "09:00", "09:00", 60, nil},
		{"zero duration", "09:00", "16:00", 0, nil},
		{"negative duration", "09:00", "16:00", -30, nil},
		{"duration below minimum", "09:00", "16:00", domain.MinSlotDurationMinutes - 1, nil},
		{"duration above maximum", "09:00", "16:00", domain.MaxSlotDurationMinutes + 1, nil},
		{"inverted break", "09:00", "16:00", 60, &domain.BreakWindow{Start: "13:00", End: "12:00"}},
		{"empty break", "09:00", "16:00", 60, &domain.BreakWindow{Start: "12:00", End: "12:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.start, tt.end, tt.duration, tt.brk)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}
