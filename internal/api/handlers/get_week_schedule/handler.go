package get_week_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getWeekSchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_week_schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgMissingUserID         = "отсутствует идентификатор пользователя"
	msgMissingWeekStart      = "начало недели обязательно"
	msgInvalidWeekStart      = "некорректный формат даты начала недели, ожидается YYYY-MM-DD"
	msgInvalidMaxVisible     = "некорректное значение maxVisible"
)

type Handler struct {
	useCase GetWeekScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/schedule/week
// Query params: weekStart (required, YYYY-MM-DD), maxVisible (optional, int)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedule/week - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /professionals/{id}/schedule/week - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	weekStartStr := r.URL.Query().Get("weekStart")
	if weekStartStr == "" {
		h.logger.Warn("GET /professionals/{id}/schedule/week - Missing weekStart")
		handlers.RespondBadRequest(w, msgMissingWeekStart)
		return
	}

	weekStart, err := time.Parse(domain.DateFormat, weekStartStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/schedule/week - Invalid weekStart: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	maxVisible := 0
	if maxVisibleStr := r.URL.Query().Get("maxVisible"); maxVisibleStr != "" {
		maxVisible, err = strconv.Atoi(maxVisibleStr)
		if err != nil || maxVisible < 0 {
			h.logger.Warn("GET /professionals/{id}/schedule/week - Invalid maxVisible: %s", maxVisibleStr)
			handlers.RespondBadRequest(w, msgInvalidMaxVisible)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekSchedule.Request{
		UserID:         userID,
		ProfessionalID: professionalID,
		WeekStart:      weekStart,
		MaxVisible:     maxVisible,
	})
	if err != nil {
		switch {
		case errors.Is(err, getWeekSchedule.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/schedule/week - Invalid input: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)

		default:
			h.logger.Error("GET /professionals/{id}/schedule/week - Failed to build schedule: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/schedule/week - Schedule retrieved: professional_id=%d, weekStart=%s",
		professionalID, weekStartStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
