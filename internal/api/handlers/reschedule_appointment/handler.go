package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LCM-BookingService/internal/api/handlers"
	rescheduleAppointment "github.com/m04kA/LCM-BookingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody  = "Ungültige Anfrage"
	msgInvalidID           = "Ungültige Termin-ID"
	msgInvalidStartTime    = "Ungültiges Startzeit-Format, erwartet wird RFC3339"
	msgAppointmentNotFound = "Termin nicht gefunden"
	msgSlotConflict        = "Dieser Termin ist leider bereits vergeben. Bitte wählen Sie eine andere Uhrzeit."
	msgClosedDay           = "Sonntags ist das Studio geschlossen. Bitte wählen Sie einen anderen Tag."
	msgCancelled           = "Stornierte Termine können nicht verschoben werden"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, rescheduleAppointment.ErrSlotConflict):
			h.logger.Warn("PATCH /appointments/{id} - Slot conflict: appointment_id=%d, start=%s", id, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, rescheduleAppointment.ErrClosedDay):
			h.logger.Warn("PATCH /appointments/{id} - Closed day: appointment_id=%d, start=%s", id, req.StartTime)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, rescheduleAppointment.ErrCancelled):
			h.logger.Warn("PATCH /appointments/{id} - Appointment cancelled: appointment_id=%d", id)
			handlers.RespondError(w, http.StatusConflict, msgCancelled)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to reschedule: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment rescheduled: appointment_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
