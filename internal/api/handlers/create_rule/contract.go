package create_rule

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/rules/models"
)

type RuleService interface {
	Create(ctx context.Context, req *models.CreateRulesRequest) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
