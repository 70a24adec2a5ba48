package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/httpresp"
	"github.com/estilobarber/reservas-api/internal/middleware"
	uc "github.com/estilobarber/reservas-api/internal/usecase/reservation"
)

type ReservationHandler struct {
	listClient *uc.ListClientReservations
	agenda     *uc.ListBarberAgenda
	cancel     *uc.CancelReservation
	complete   *uc.CompleteReservation
	loc        *time.Location
}

func NewReservationHandler(
	listClient *uc.ListClientReservations,
	agenda *uc.ListBarberAgenda,
	cancel *uc.CancelReservation,
	complete *uc.CompleteReservation,
	loc *time.Location,
) *ReservationHandler {
	return &ReservationHandler{
		listClient: listClient,
		agenda:     agenda,
		cancel:     cancel,
		complete:   complete,
		loc:        loc,
	}
}

// ListMine devuelve las reservas del cliente autenticado, más
// recientes primero.
func (h *ReservationHandler) ListMine(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(string)

	reservations, err := h.listClient.Execute(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Error al cargar las reservas.")
		return
	}

	httpresp.List(c, reservations)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(string)

	res, err := h.cancel.Execute(c.Request.Context(), clientID, c.Param("id"))
	if err != nil {
		if httperr.IsBusiness(err, "reservation_not_found") {
			httperr.NotFound(c, "reservation_not_found", "Reserva no encontrada.")
			return
		}
		if httperr.IsBusiness(err, httperr.CodeInvalidState) {
			httperr.BadRequest(c, httperr.CodeInvalidState, "La reserva ya no se puede cancelar.")
			return
		}
		httperr.Internal(c, "failed_to_cancel", "Error al cancelar la reserva.")
		return
	}

	httpresp.OK(c, res)
}

// Agenda lista el día de trabajo del barbero autenticado.
func (h *ReservationHandler) Agenda(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	dateStr := c.Query("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	reservations, err := h.agenda.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_agenda", "Error al cargar la agenda.")
		return
	}

	httpresp.List(c, reservations)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(string)

	res, err := h.complete.Execute(c.Request.Context(), barberID, c.Param("id"))
	if err != nil {
		if httperr.IsBusiness(err, "reservation_not_found") {
			httperr.NotFound(c, "reservation_not_found", "Reserva no encontrada.")
			return
		}
		if httperr.IsBusiness(err, httperr.CodeInvalidState) {
			httperr.BadRequest(c, httperr.CodeInvalidState, "La reserva no está en un estado completable.")
			return
		}
		httperr.Internal(c, "failed_to_complete", "Error al completar la reserva.")
		return
	}

	httpresp.OK(c, res)
}
