package get_admin_calendar

import (
	"net/http"
	"time"

	"github.com/m04kA/LCM-BookingService/internal/api/handlers"
	"github.com/m04kA/LCM-BookingService/internal/domain"
)

const msgInvalidRange = "Ungültiger Zeitraum, erwartet werden start und end als YYYY-MM-DD"

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar?start=YYYY-MM-DD&end=YYYY-MM-DD
// end-дата включается в период целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, err := time.Parse(domain.DateFormat, query.Get("start"))
	if err != nil {
		h.logger.Warn("GET /admin/calendar - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	end, err := time.Parse(domain.DateFormat, query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /admin/calendar - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	if end.Before(start) {
		h.logger.Warn("GET /admin/calendar - End before start: start=%s, end=%s", query.Get("start"), query.Get("end"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.CalendarEvents(r.Context(), start, end.AddDate(0, 0, 1))
	if err != nil {
		h.logger.Error("GET /admin/calendar - Failed to fetch calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
