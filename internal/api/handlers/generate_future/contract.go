package generate_future

import (
	"context"

	generateFuture "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_future"
)

type GenerateFutureUseCase interface {
	Execute(ctx context.Context, req *generateFuture.Request) (*generateFuture.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
