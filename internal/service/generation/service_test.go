package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Mock repositories
type MockRuleRepo struct{ mock.Mock }
type MockSlotRepo struct{ mock.Mock }

func (m *MockRuleRepo) ListByProfessional(ctx context.Context, professionalID int64, includeInactive bool) ([]*domain.AvailabilityRule, error) {
	args := m.Called(ctx, professionalID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AvailabilityRule), args.Error(1)
}

func (m *MockSlotRepo) Create(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleSlot), args.Error(1)
}

func (m *MockSlotRepo) Upsert(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleSlot), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

// Понедельник 09:00-10:00 со слотами по 30 минут
func mondayRule(t *testing.T) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		ID:                  1,
		ProfessionalID:      42,
		DayOfWeek:           ptr.Ptr(1),
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "10:00"),
		SlotDurationMinutes: 30,
		IsActive:            true,
	}
}

func TestMaterializeRange_CreatesSlots(t *testing.T) {
	ruleRepo := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	svc := NewService(ruleRepo, slots, nil, nopLogger{})

	rule := mondayRule(t)
	ruleRepo.On("ListByProfessional", mock.Anything, int64(42), false).
		Return([]*domain.AvailabilityRule{rule}, nil)

	// Диапазон охватывает ровно один понедельник (2025-11-03) - два слота
	slots.On("Create", mock.Anything, mock.Anything).Return(&domain.ScheduleSlot{ID: 1}, nil).Twice()

	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	result, err := svc.MaterializeRange(context.Background(), "test", 42, from, from.AddDate(0, 0, 7), domain.ConflictSkip)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	slots.AssertExpectations(t)
}

func TestMaterializeRange_SkipsExistingSlots(t *testing.T) {
	ruleRepo := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	svc := NewService(ruleRepo, slots, nil, nopLogger{})

	rule := mondayRule(t)
	ruleRepo.On("ListByProfessional", mock.Anything, int64(42), false).
		Return([]*domain.AvailabilityRule{rule}, nil)

	// Первый слот уже материализован - попадает в skipped, а не в ошибку
	slots.On("Create", mock.Anything, mock.Anything).Return(nil, slotRepo.ErrSlotAlreadyExists).Once()
	slots.On("Create", mock.Anything, mock.Anything).Return(&domain.ScheduleSlot{ID: 2}, nil).Once()

	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	result, err := svc.MaterializeRange(context.Background(), "test", 42, from, from.AddDate(0, 0, 7), domain.ConflictSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
}

func TestMaterializeRange_CountsFailuresWithoutAborting(t *testing.T) {
	ruleRepo := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	svc := NewService(ruleRepo, slots, nil, nopLogger{})

	rule := mondayRule(t)
	ruleRepo.On("ListByProfessional", mock.Anything, int64(42), false).
		Return([]*domain.AvailabilityRule{rule}, nil)

	// Сбой одного слота не прерывает батч
	slots.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()
	slots.On("Create", mock.Anything, mock.Anything).Return(&domain.ScheduleSlot{ID: 2}, nil).Once()

	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	result, err := svc.MaterializeRange(context.Background(), "test", 42, from, from.AddDate(0, 0, 7), domain.ConflictSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 1, result.Failed)
}

func TestMaterializeRange_ReplacePolicyUpserts(t *testing.T) {
	ruleRepo := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	svc := NewService(ruleRepo, slots, nil, nopLogger{})

	rule := mondayRule(t)
	ruleRepo.On("ListByProfessional", mock.Anything, int64(42), false).
		Return([]*domain.AvailabilityRule{rule}, nil)

	slots.On("Upsert", mock.Anything, mock.Anything).Return(&domain.ScheduleSlot{ID: 1}, nil).Twice()

	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	result, err := svc.MaterializeRange(context.Background(), "test", 42, from, from.AddDate(0, 0, 7), domain.ConflictReplace)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	slots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	slots.AssertExpectations(t)
}

func TestMaterializeRange_NoActiveRules(t *testing.T) {
	ruleRepo := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	svc := NewService(ruleRepo, slots, nil, nopLogger{})

	ruleRepo.On("ListByProfessional", mock.Anything, int64(42), false).
		Return([]*domain.AvailabilityRule{}, nil)

	from := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	_, err := svc.MaterializeRange(context.Background(), "test", 42, from, from.AddDate(0, 0, 7), domain.ConflictSkip)

	assert.ErrorIs(t, err, ErrNoActiveRules)
}

func TestMaterializeRule_OneOffInsideRange(t *testing.T) {
	slots := new(MockSlotRepo)
	svc := NewService(new(MockRuleRepo), slots, nil, nopLogger{})

	date := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	rule := &domain.AvailabilityRule{
		ID:                  7,
		ProfessionalID:      42,
		Date:                &date,
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "10:00"),
		SlotDurationMinutes: 60,
		IsActive:            true,
	}

	slots.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.ScheduleSlot) bool {
		return s.Date.Equal(date) && s.RuleID == 7
	})).Return(&domain.ScheduleSlot{ID: 1}, nil).Once()

	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.MaterializeRule(context.Background(), rule, from, from.AddDate(0, 1, 0), domain.ConflictSkip)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	slots.AssertExpectations(t)
}

func TestMaterializeRule_OneOffOutsideRange(t *testing.T) {
	slots := new(MockSlotRepo)
	svc := NewService(new(MockRuleRepo), slots, nil, nopLogger{})

	date := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)
	rule := &domain.AvailabilityRule{
		ID:                  7,
		ProfessionalID:      42,
		Date:                &date,
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "10:00"),
		SlotDurationMinutes: 60,
		IsActive:            true,
	}

	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.MaterializeRule(context.Background(), rule, from, from.AddDate(0, 1, 0), domain.ConflictSkip)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total())
	slots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
