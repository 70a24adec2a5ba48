package reservation

import (
	"time"

	"github.com/estilobarber/reservas-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(res *models.Reservation, now time.Time) error {
	if err := assertTransition(Status(res.Status), StatusConfirmed); err != nil {
		return err
	}

	res.Status = string(StatusConfirmed)
	res.ConfirmedAt = &now
	return nil
}

func Cancel(res *models.Reservation, now time.Time) error {
	if err := assertTransition(Status(res.Status), StatusCancelled); err != nil {
		return err
	}

	res.Status = string(StatusCancelled)
	res.CancelledAt = &now
	return nil
}

func Complete(res *models.Reservation, now time.Time) error {
	if err := assertTransition(Status(res.Status), StatusCompleted); err != nil {
		return err
	}

	res.Status = string(StatusCompleted)
	res.CompletedAt = &now
	return nil
}
