package reservation

import (
	"context"
	"time"

	"github.com/estilobarber/reservas-api/internal/audit"
	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	ClientID string

	ServiceID string
	BarberID  string

	Date  string // YYYY-MM-DD
	Time  string // HH:MM:SS o HH:MM
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo       domain.Repository
	quote      *QuotePrice
	audit      *audit.Dispatcher
	loc        *time.Location
	minAdvance time.Duration
}

func NewCreateReservation(
	repo domain.Repository,
	quote *QuotePrice,
	auditDispatcher *audit.Dispatcher,
	loc *time.Location,
	minAdvanceMinutes int,
) *CreateReservation {
	return &CreateReservation{
		repo:       repo,
		quote:      quote,
		audit:      auditDispatcher,
		loc:        loc,
		minAdvance: time.Duration(minAdvanceMinutes) * time.Minute,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute valida y persiste la reserva en estado pending. El precio
// se calcula aquí, nunca del lado del cliente, y el conflicto de
// horario se verifica contra las reservas vigentes: si el slot se
// ocupó entre la selección y el envío, falla sin dejar fila.
func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	start, err := parseDateTime(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := time.Now().In(uc.loc)
	if start.Before(now.Add(uc.minAdvance)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	if err := uc.assertWithinWorkingHours(ctx, barber.ID, start, end); err != nil {
		return nil, err
	}

	price, err := uc.quote.Execute(ctx, service.ID, barber.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		barber.ID,
		start,
		end,
	); err != nil {
		return nil, err
	}

	res := &models.Reservation{
		ClientID:   in.ClientID,
		BarberID:   barber.ID,
		ServiceID:  service.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		TotalPrice: price,
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}

// assertWithinWorkingHours rechaza horarios fuera de la jornada del
// barbero o que pisen su almuerzo, aunque no choquen con otra
// reserva.
func (uc *CreateReservation) assertWithinWorkingHours(
	ctx context.Context,
	barberID string,
	start, end time.Time,
) error {

	wh, err := uc.repo.GetWorkingHours(ctx, barberID, int(start.Weekday()))
	if err != nil || !wh.Active {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	atClock := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			start.Location(),
		)
	}

	if start.Before(atClock(wh.StartTime)) || end.After(atClock(wh.EndTime)) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		if start.Before(atClock(wh.LunchEnd)) && end.After(atClock(wh.LunchStart)) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
	}

	return nil
}

func parseDateTime(date, timeStr string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+timeStr, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, loc)
}
