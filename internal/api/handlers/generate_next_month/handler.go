package generate_next_month

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	generateNextMonth "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_next_month"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgMissingUserID         = "отсутствует идентификатор пользователя"
	msgNoActiveRules         = "у профессионала нет активных правил доступности"
)

type Handler struct {
	useCase GenerateNextMonthUseCase
	logger  Logger
}

func NewHandler(useCase GenerateNextMonthUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/professionals/{professionalId}/slots/generate-next-month
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/slots/generate-next-month - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /professionals/{id}/slots/generate-next-month - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateNextMonth.Request{
		UserID:         userID,
		ProfessionalID: professionalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateNextMonth.ErrNoActiveRules):
			h.logger.Warn("POST /professionals/{id}/slots/generate-next-month - No active rules: professional_id=%d",
				professionalID)
			handlers.RespondNotFound(w, msgNoActiveRules)

		case errors.Is(err, generateNextMonth.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/slots/generate-next-month - Invalid input: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)

		default:
			h.logger.Error("POST /professionals/{id}/slots/generate-next-month - Generation failed: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/slots/generate-next-month - Generated: professional_id=%d, created=%d, skipped=%d, failed=%d",
		professionalID, result.Created, result.Skipped, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
