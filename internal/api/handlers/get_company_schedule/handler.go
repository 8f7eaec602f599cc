package get_company_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonhub/SLN-BookingService/internal/api/handlers"
)

const msgInvalidCompanyID = "некорректный ID компании"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/schedule - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), companyID)
	if err != nil {
		h.logger.Error("GET /companies/{id}/schedule - Failed to get schedule: company_id=%d, error=%v",
			companyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companies/{id}/schedule - Schedule retrieved successfully: company_id=%d", companyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
