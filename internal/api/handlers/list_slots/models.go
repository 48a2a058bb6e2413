package list_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	listSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/list_slots"
)

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(professionalID int64, fromStr, toStr, onlyActiveStr string) (*listSlots.Request, error) {
	req := &listSlots.Request{
		ProfessionalID: professionalID,
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	if onlyActiveStr != "" {
		onlyActive, err := strconv.ParseBool(onlyActiveStr)
		if err != nil {
			return nil, err
		}
		req.OnlyActive = onlyActive
	}

	return req, nil
}
