package reservation

import (
	"context"
	"time"

	"github.com/estilobarber/reservas-api/internal/audit"
	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/models"
)

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCancelReservation(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	loc *time.Location,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: auditDispatcher,
		loc:   loc,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	clientID string,
	reservationID string,
) (*models.Reservation, error) {

	res, err := uc.repo.GetReservationForClient(ctx, reservationID, clientID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	now := time.Now().In(uc.loc)
	if err := domain.Cancel(res, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &clientID,
		Action:   "reservation_cancelled",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
