package get_week_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type MockAppointmentRepo struct{ mock.Mock }

func (m *MockAppointmentRepo) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
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

func appointment(t *testing.T, id int64, date time.Time, start string, minutes int) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		ID:              id,
		ProfessionalID:  42,
		CustomerID:      100 + id,
		ScheduledDate:   date,
		StartTime:       mustTime(t, start),
		DurationMinutes: minutes,
		Status:          domain.StatusConfirmed,
		CustomerName:    "Клиент",
	}
}

func TestExecute_TruncatesCellToMaxVisible(t *testing.T) {
	repo := new(MockAppointmentRepo)
	uc := NewUseCase(repo, nopLogger{})

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	// Четыре записи в понедельник, maxVisible по умолчанию = 2
	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{
		appointment(t, 1, monday, "09:00", 30),
		appointment(t, 2, monday, "10:00", 30),
		appointment(t, 3, monday, "11:00", 30),
		appointment(t, 4, monday, "12:00", 30),
	}, nil)

	result, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42, WeekStart: monday})

	require.NoError(t, err)
	require.Len(t, result.Days, 7)

	cell := result.Days[0]
	assert.Equal(t, "2025-11-10", cell.Date)
	assert.Equal(t, 4, cell.TotalAppointments)
	require.Len(t, cell.Appointments, 2)
	assert.Equal(t, 2, cell.MoreCount)

	// Видимые записи - самые ранние
	assert.Equal(t, "09:00", cell.Appointments[0].StartTime)
	assert.Equal(t, "10:00", cell.Appointments[1].StartTime)

	// Остальные дни недели пусты
	for _, day := range result.Days[1:] {
		assert.Empty(t, day.Appointments)
		assert.Equal(t, 0, day.MoreCount)
	}
}

func TestExecute_LayoutComputedOnFullDayBeforeTruncation(t *testing.T) {
	repo := new(MockAppointmentRepo)
	uc := NewUseCase(repo, nopLogger{})

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	// Три попарно пересекающиеся записи: колонок три, даже если видимы две
	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{
		appointment(t, 1, monday, "09:00", 60),
		appointment(t, 2, monday, "09:30", 60),
		appointment(t, 3, monday, "09:45", 75),
	}, nil)

	result, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42, WeekStart: monday, MaxVisible: 2})

	require.NoError(t, err)
	cell := result.Days[0]
	assert.Equal(t, 3, cell.TotalColumns)
	require.Len(t, cell.Appointments, 2)
	assert.Equal(t, 1, cell.MoreCount)
	for _, view := range cell.Appointments {
		assert.Equal(t, 3, view.TotalColumns)
	}
}

func TestExecute_CellSmallerThanLimitShowsAll(t *testing.T) {
	repo := new(MockAppointmentRepo)
	uc := NewUseCase(repo, nopLogger{})

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{
		appointment(t, 1, monday, "09:00", 30),
		appointment(t, 2, tuesday, "10:00", 30),
	}, nil)

	result, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42, WeekStart: monday, MaxVisible: 5})

	require.NoError(t, err)
	assert.Len(t, result.Days[0].Appointments, 1)
	assert.Equal(t, 0, result.Days[0].MoreCount)
	assert.Len(t, result.Days[1].Appointments, 1)
	assert.Equal(t, 0, result.Days[1].MoreCount)
}

func TestExecute_QueriesFullWeekPeriod(t *testing.T) {
	repo := new(MockAppointmentRepo)
	uc := NewUseCase(repo, nopLogger{})

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC)

	repo.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f domain.AppointmentsFilter) bool {
		return f.ProfessionalID == 42 &&
			f.StartDate != nil && f.StartDate.Equal(monday) &&
			f.EndDate != nil && f.EndDate.Equal(sunday)
	})).Return([]*domain.Appointment{}, nil)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42, WeekStart: monday})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(new(MockAppointmentRepo), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 0, WeekStart: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 7, ProfessionalID: 42, WeekStart: time.Now(), MaxVisible: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
