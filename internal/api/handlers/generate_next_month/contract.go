package generate_next_month

import (
	"context"

	generateNextMonth "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_next_month"
)

type GenerateNextMonthUseCase interface {
	Execute(ctx context.Context, req *generateNextMonth.Request) (*generateNextMonth.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
