package reservation

import (
	"context"
	"time"

	"github.com/estilobarber/reservas-api/internal/audit"
	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/models"
)

// CompleteReservation la ejecuta el barbero al terminar el corte.
type CompleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCompleteReservation(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	loc *time.Location,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		audit: auditDispatcher,
		loc:   loc,
	}
}

func (uc *CompleteReservation) Execute(
	ctx context.Context,
	barberID string,
	reservationID string,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservationForBarber(ctx, reservationID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	now := time.Now().In(uc.loc)
	if err := domain.Complete(res, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barberID,
		Action:   "reservation_completed",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
