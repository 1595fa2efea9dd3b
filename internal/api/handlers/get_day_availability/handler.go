package get_day_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/LCM-BookingService/internal/api/handlers"
	"github.com/m04kA/LCM-BookingService/internal/domain"
	getDayAvailability "github.com/m04kA/LCM-BookingService/internal/usecase/get_day_availability"
)

const (
	msgInvalidDate    = "Ungültiges Datumsformat, erwartet wird YYYY-MM-DD"
	msgInvalidExclude = "Ungültiger exclude-Parameter"
	msgUnknownService = "Unbekannte Behandlung"
)

type Handler struct {
	useCase GetDayAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetDayAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&serviceId=&subcategoryId=&exclude=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getDayAvailability.Request{
		Date:          date,
		ServiceID:     query.Get("serviceId"),
		SubcategoryID: query.Get("subcategoryId"),
	}

	if exclude := query.Get("exclude"); exclude != "" {
		excludeID, err := strconv.ParseInt(exclude, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid exclude: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExclude)
			return
		}
		req.ExcludeID = &excludeID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getDayAvailability.ErrUnknownService):
			h.logger.Warn("GET /availability - Unknown service: service=%s/%s", req.ServiceID, req.SubcategoryID)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, getDayAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /availability - Failed to compute availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
