package generate_future

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	generateFuture "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_future"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует идентификатор пользователя"
	msgInvalidHorizon        = "горизонт должен быть 1, 3, 6 или 12 месяцев"
	msgInvalidPolicy         = "onConflict должен быть \"skip\" или \"replace\""
	msgNoActiveRules         = "у профессионала нет активных правил доступности"
)

type Handler struct {
	useCase GenerateFutureUseCase
	logger  Logger
}

func NewHandler(useCase GenerateFutureUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/professionals/{professionalId}/slots/generate-future
// Body: {"months": 1|3|6|12, "onConflict": "skip"|"replace"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/slots/generate-future - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /professionals/{id}/slots/generate-future - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req GenerateFutureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/slots/generate-future - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateFuture.Request{
		UserID:         userID,
		ProfessionalID: professionalID,
		Months:         req.Months,
		OnConflict:     req.OnConflict,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateFuture.ErrInvalidHorizon):
			h.logger.Warn("POST /professionals/{id}/slots/generate-future - Invalid horizon: professional_id=%d, months=%d",
				professionalID, req.Months)
			handlers.RespondBadRequest(w, msgInvalidHorizon)

		case errors.Is(err, generateFuture.ErrInvalidPolicy):
			h.logger.Warn("POST /professionals/{id}/slots/generate-future - Invalid policy: professional_id=%d, onConflict=%q",
				professionalID, req.OnConflict)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		case errors.Is(err, generateFuture.ErrNoActiveRules):
			h.logger.Warn("POST /professionals/{id}/slots/generate-future - No active rules: professional_id=%d",
				professionalID)
			handlers.RespondNotFound(w, msgNoActiveRules)

		case errors.Is(err, generateFuture.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/slots/generate-future - Invalid input: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)

		default:
			h.logger.Error("POST /professionals/{id}/slots/generate-future - Generation failed: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/slots/generate-future - Generated: professional_id=%d, months=%d, created=%d, skipped=%d, failed=%d",
		professionalID, result.Months, result.TotalCreated, result.TotalSkipped, result.TotalFailed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
