package generate_next_month

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/generation"
	genModels "github.com/m04kA/SMC-ScheduleService/internal/service/generation/models"
)

type MockMaterializer struct{ mock.Mock }

func (m *MockMaterializer) MaterializeRange(ctx context.Context, operation string, professionalID int64, from, until time.Time, policy domain.ConflictPolicy) (*genModels.Result, error) {
	args := m.Called(ctx, operation, professionalID, from, until, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genModels.Result), args.Error(1)
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecute_GeneratesExactlyNextMonth(t *testing.T) {
	mat := new(MockMaterializer)
	uc := NewUseCase(mat, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)}

	// Ноябрьский вызов покрывает ровно декабрь
	expectedStart := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mat.On("MaterializeRange", mock.Anything, "generate_next_month", int64(42), expectedStart, expectedEnd, domain.ConflictSkip).
		Return(&genModels.Result{Created: 40, Skipped: 2, Failed: 1}, nil)

	result, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42})

	require.NoError(t, err)
	assert.Equal(t, 40, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 12, result.Month)
	assert.Equal(t, 2025, result.Year)
	mat.AssertExpectations(t)
}

func TestExecute_YearRollover(t *testing.T) {
	mat := new(MockMaterializer)
	uc := NewUseCase(mat, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)}

	expectedStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mat.On("MaterializeRange", mock.Anything, "generate_next_month", int64(42), expectedStart, expectedEnd, domain.ConflictSkip).
		Return(&genModels.Result{Created: 10}, nil)

	result, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Month)
	assert.Equal(t, 2026, result.Year)
}

func TestExecute_NoActiveRules(t *testing.T) {
	mat := new(MockMaterializer)
	uc := NewUseCase(mat, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)}

	mat.On("MaterializeRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, generation.ErrNoActiveRules)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42})

	assert.ErrorIs(t, err, ErrNoActiveRules)
}

func TestExecute_InvalidProfessionalID(t *testing.T) {
	mat := new(MockMaterializer)
	uc := NewUseCase(mat, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
	mat.AssertNotCalled(t, "MaterializeRange",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
