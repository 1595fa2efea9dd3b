package lookup_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/LCM-BookingService/internal/api/handlers"
	"github.com/m04kA/LCM-BookingService/internal/service/appointments"
	"github.com/m04kA/LCM-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "Ungültige Anfrage"
	msgContactRequired    = "Bitte geben Sie E-Mail oder Telefonnummer an"
)

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

// Handle POST /api/v1/appointments/lookup
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LookupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/lookup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Lookup(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments/lookup - Missing contacts")
			handlers.RespondBadRequest(w, msgContactRequired)

		default:
			h.logger.Error("POST /appointments/lookup - Failed to lookup appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
