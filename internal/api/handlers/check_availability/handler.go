package check_availability

import (
	"errors"
	"net/http"

	"github.com/salonhub/SLN-BookingService/internal/api/handlers"
	checkAvailability "github.com/salonhub/SLN-BookingService/internal/usecase/check_availability"
)

const (
	msgMissingCompanyIDs = "список ID компаний обязателен"
	msgMissingDate       = "дата обязательна"
	msgMissingDuration   = "длительность услуги обязательна"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: companyIds (required, "1,2,3"), date (required, YYYY-MM-DD),
// durationMinutes (required), from (optional, HH:MM), to (optional, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	companyIDsStr := query.Get("companyIds")
	if companyIDsStr == "" {
		h.logger.Warn("GET /availability - Missing company IDs")
		handlers.RespondBadRequest(w, msgMissingCompanyIDs)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationStr := query.Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /availability - Missing duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(companyIDsStr, dateStr, durationStr, query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability - Failed to check availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Availability checked successfully: companies=%d, date=%s",
		len(result.Results), dateStr)
	handlers.RespondJSON(w, http.StatusOK, response)
}
