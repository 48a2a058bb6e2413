package list_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	listSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/list_slots"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidQueryParams    = "некорректные параметры запроса"
	msgInvalidPeriod         = "конец периода раньше начала"
)

type Handler struct {
	useCase ListSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/slots
// Query params: from, to (optional, YYYY-MM-DD), onlyActive (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := strconv.ParseInt(vars["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(professionalID, query.Get("from"), query.Get("to"), query.Get("onlyActive"))
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, listSlots.ErrInvalidPeriod):
			h.logger.Warn("GET /professionals/{id}/slots - Invalid period: professional_id=%d", professionalID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, listSlots.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/slots - Invalid input: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)

		default:
			h.logger.Error("GET /professionals/{id}/slots - Failed to list slots: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/slots - Slots retrieved successfully: professional_id=%d, count=%d",
		professionalID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
