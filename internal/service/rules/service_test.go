package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rule"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	profClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/professionalservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/generation"
	genModels "github.com/m04kA/SMC-ScheduleService/internal/service/generation/models"
	"github.com/m04kA/SMC-ScheduleService/internal/service/rules/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Mock collaborators
type MockRuleRepo struct{ mock.Mock }
type MockSlotRepo struct{ mock.Mock }
type MockMaterializer struct{ mock.Mock }
type MockProfClient struct{ mock.Mock }

func (m *MockRuleRepo) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	args := m.Called(ctx, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityRule), args.Error(1)
}

func (m *MockRuleRepo) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityRule), args.Error(1)
}

func (m *MockRuleRepo) ListByProfessional(ctx context.Context, professionalID int64, includeInactive bool) ([]*domain.AvailabilityRule, error) {
	args := m.Called(ctx, professionalID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AvailabilityRule), args.Error(1)
}

func (m *MockRuleRepo) Update(ctx context.Context, rule *domain.AvailabilityRule) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockRuleRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSlotRepo) DeleteByRuleFromDate(ctx context.Context, ruleID int64, from time.Time) (int64, error) {
	args := m.Called(ctx, ruleID, from)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSlotRepo) MaxDateByRule(ctx context.Context, ruleID int64) (time.Time, error) {
	args := m.Called(ctx, ruleID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockMaterializer) MaterializeRule(ctx context.Context, rule *domain.AvailabilityRule, from, until time.Time, policy domain.ConflictPolicy) (*genModels.Result, error) {
	args := m.Called(ctx, rule, from, until, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genModels.Result), args.Error(1)
}

func (m *MockProfClient) ValidateProfessional(ctx context.Context, professionalID int64) error {
	return m.Called(ctx, professionalID).Error(0)
}

// MockGenSlotRepo репозиторий слотов для сервиса генерации
type MockGenSlotRepo struct{ mock.Mock }

func (m *MockGenSlotRepo) Create(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleSlot), args.Error(1)
}

func (m *MockGenSlotRepo) Upsert(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleSlot), args.Error(1)
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedTimeProvider возвращает заранее заданное время
type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(rules *MockRuleRepo, slots *MockSlotRepo, mat *MockMaterializer, prof *MockProfClient) *Service {
	svc := NewService(rules, slots, mat, prof, fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)}
	return svc
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func TestCreate_WeekdayGroupSharesGroupID(t *testing.T) {
	rules := new(MockRuleRepo)
	prof := new(MockProfClient)
	svc := newTestService(rules, new(MockSlotRepo), new(MockMaterializer), prof)

	prof.On("ValidateProfessional", mock.Anything, int64(42)).Return(nil)

	captured := make([]*domain.AvailabilityRule, 0, 3)
	rules.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = append(captured, args.Get(1).(*domain.AvailabilityRule))
		}).
		Return(&domain.AvailabilityRule{ID: 1}, nil).
		Times(3)

	result, err := svc.Create(context.Background(), &models.CreateRulesRequest{
		ProfessionalID:      42,
		DaysOfWeek:          []int{1, 3, 5},
		StartTime:           "09:00",
		EndTime:             "18:00",
		SlotDurationMinutes: 30,
	})

	require.NoError(t, err)
	require.Len(t, result.Rules, 3)

	require.Len(t, captured, 3)
	assert.Equal(t, captured[0].GroupID, captured[1].GroupID)
	assert.Equal(t, captured[0].GroupID, captured[2].GroupID)
	assert.Equal(t, ptr.Ptr(1), captured[0].DayOfWeek)
	assert.Equal(t, ptr.Ptr(3), captured[1].DayOfWeek)
	assert.Equal(t, ptr.Ptr(5), captured[2].DayOfWeek)
	rules.AssertExpectations(t)
}

func TestCreate_ProfessionalNotFound(t *testing.T) {
	rules := new(MockRuleRepo)
	prof := new(MockProfClient)
	svc := newTestService(rules, new(MockSlotRepo), new(MockMaterializer), prof)

	prof.On("ValidateProfessional", mock.Anything, int64(42)).Return(profClient.ErrProfessionalNotFound)

	_, err := svc.Create(context.Background(), &models.CreateRulesRequest{
		ProfessionalID: 42,
		DaysOfWeek:     []int{1},
		StartTime:      "09:00",
		EndTime:        "18:00",
	})

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	rules.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_RejectsAmbiguousSchedule(t *testing.T) {
	prof := new(MockProfClient)
	svc := newTestService(new(MockRuleRepo), new(MockSlotRepo), new(MockMaterializer), prof)

	prof.On("ValidateProfessional", mock.Anything, int64(42)).Return(nil)

	date := "2025-11-20"
	_, err := svc.Create(context.Background(), &models.CreateRulesRequest{
		ProfessionalID: 42,
		Date:           &date,
		DaysOfWeek:     []int{1},
		StartTime:      "09:00",
		EndTime:        "18:00",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_RejectsInvalidRange(t *testing.T) {
	prof := new(MockProfClient)
	svc := newTestService(new(MockRuleRepo), new(MockSlotRepo), new(MockMaterializer), prof)

	prof.On("ValidateProfessional", mock.Anything, int64(42)).Return(nil)

	_, err := svc.Create(context.Background(), &models.CreateRulesRequest{
		ProfessionalID: 42,
		DaysOfWeek:     []int{1},
		StartTime:      "18:00",
		EndTime:        "09:00",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_RegeneratesFutureSlots(t *testing.T) {
	rules := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	mat := new(MockMaterializer)
	svc := newTestService(rules, slots, mat, new(MockProfClient))

	existing := &domain.AvailabilityRule{
		ID:                  5,
		ProfessionalID:      42,
		DayOfWeek:           ptr.Ptr(1),
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "18:00"),
		SlotDurationMinutes: 30,
		IsActive:            true,
	}

	today := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	maxDate := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)

	rules.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	rules.On("Update", mock.Anything, mock.Anything).Return(nil)
	slots.On("MaxDateByRule", mock.Anything, int64(5)).Return(maxDate, nil)
	slots.On("DeleteByRuleFromDate", mock.Anything, int64(5), today).Return(int64(14), nil)
	mat.On("MaterializeRule", mock.Anything, mock.Anything, today, maxDate.AddDate(0, 0, 1), domain.ConflictSkip).
		Return(&genModels.Result{Created: 10}, nil)

	result, err := svc.Update(context.Background(), 5, &models.UpdateRuleRequest{
		StartTime:           "10:00",
		EndTime:             "16:00",
		SlotDurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.Equal(t, "10:00", result.StartTime)
	assert.Equal(t, "16:00", result.EndTime)
	assert.Equal(t, 60, result.SlotDurationMinutes)
	mat.AssertExpectations(t)
	slots.AssertExpectations(t)
}

func TestUpdate_SkipsSlotsHeldBySiblingRule(t *testing.T) {
	// Пересекающиеся правила одного профессионала легальны: слот на то же
	// (дата, время) может принадлежать соседнему правилу. Регенерация обязана
	// пропустить его и довести транзакцию до конца, а не упасть
	rules := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	genSlots := new(MockGenSlotRepo)
	materializer := generation.NewService(nil, genSlots, nil, nopLogger{})

	svc := NewService(rules, slots, materializer, new(MockProfClient), fakeTxManager{}, nopLogger{})
	svc.timeProvider = fixedTimeProvider{now: time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)}

	existing := &domain.AvailabilityRule{
		ID:                  5,
		ProfessionalID:      42,
		DayOfWeek:           ptr.Ptr(1),
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "10:00"),
		SlotDurationMinutes: 30,
		IsActive:            true,
	}

	today := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC) // понедельник

	rules.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	rules.On("Update", mock.Anything, mock.Anything).Return(nil)
	slots.On("MaxDateByRule", mock.Anything, int64(5)).Return(today, nil)
	slots.On("DeleteByRuleFromDate", mock.Anything, int64(5), today).Return(int64(2), nil)

	// 09:00 занят слотом соседнего правила, 09:30 свободен
	genSlots.On("Create", mock.Anything, mock.Anything).
		Return(nil, slotRepo.ErrSlotAlreadyExists).Once()
	genSlots.On("Create", mock.Anything, mock.Anything).
		Return(&domain.ScheduleSlot{ID: 77}, nil).Once()

	result, err := svc.Update(context.Background(), 5, &models.UpdateRuleRequest{
		StartTime:           "09:00",
		EndTime:             "10:00",
		SlotDurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00", result.StartTime)
	genSlots.AssertExpectations(t)
	genSlots.AssertNumberOfCalls(t, "Create", 2)
}

func TestUpdate_NoMaterializedSlots(t *testing.T) {
	rules := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	mat := new(MockMaterializer)
	svc := newTestService(rules, slots, mat, new(MockProfClient))

	existing := &domain.AvailabilityRule{
		ID:                  5,
		ProfessionalID:      42,
		DayOfWeek:           ptr.Ptr(1),
		StartTime:           mustTime(t, "09:00"),
		EndTime:             mustTime(t, "18:00"),
		SlotDurationMinutes: 30,
		IsActive:            true,
	}

	rules.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	rules.On("Update", mock.Anything, mock.Anything).Return(nil)
	slots.On("MaxDateByRule", mock.Anything, int64(5)).Return(time.Time{}, slotRepo.ErrSlotNotFound)

	_, err := svc.Update(context.Background(), 5, &models.UpdateRuleRequest{
		StartTime: "10:00",
		EndTime:   "16:00",
	})

	require.NoError(t, err)
	slots.AssertNotCalled(t, "DeleteByRuleFromDate", mock.Anything, mock.Anything, mock.Anything)
	mat.AssertNotCalled(t, "MaterializeRule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_RuleNotFound(t *testing.T) {
	rules := new(MockRuleRepo)
	svc := newTestService(rules, new(MockSlotRepo), new(MockMaterializer), new(MockProfClient))

	rules.On("GetByID", mock.Anything, int64(99)).Return(nil, ruleRepo.ErrRuleNotFound)

	_, err := svc.Update(context.Background(), 99, &models.UpdateRuleRequest{
		StartTime: "10:00",
		EndTime:   "16:00",
	})

	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestDelete_RemovesRuleAndFutureSlots(t *testing.T) {
	rules := new(MockRuleRepo)
	slots := new(MockSlotRepo)
	svc := newTestService(rules, slots, new(MockMaterializer), new(MockProfClient))

	existing := &domain.AvailabilityRule{ID: 5, ProfessionalID: 42, DayOfWeek: ptr.Ptr(1)}
	today := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	rules.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	slots.On("DeleteByRuleFromDate", mock.Anything, int64(5), today).Return(int64(8), nil)
	rules.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.Delete(context.Background(), 5)

	require.NoError(t, err)
	rules.AssertExpectations(t)
	slots.AssertExpectations(t)
}

func TestDelete_RuleNotFound(t *testing.T) {
	rules := new(MockRuleRepo)
	svc := newTestService(rules, new(MockSlotRepo), new(MockMaterializer), new(MockProfClient))

	rules.On("GetByID", mock.Anything, int64(99)).Return(nil, ruleRepo.ErrRuleNotFound)

	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrRuleNotFound)
}
