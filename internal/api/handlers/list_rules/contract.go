package list_rules

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/rules/models"
)

type RuleService interface {
	List(ctx context.Context, professionalID int64, includeInactive bool) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
