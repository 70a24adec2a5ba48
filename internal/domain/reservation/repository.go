package reservation

import (
	"context"
	"time"

	"github.com/estilobarber/reservas-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id string,
	) (*models.Service, error)

	FindServiceByTitle(
		ctx context.Context,
		title string,
	) (*models.Service, error)

	ListActiveServices(
		ctx context.Context,
	) ([]models.Service, error)

	// -------- Barbers --------
	ListAvailableBarbers(
		ctx context.Context,
	) ([]models.Profile, error)

	GetBarber(
		ctx context.Context,
		id string,
	) (*models.Profile, error)

	GetCustomPrice(
		ctx context.Context,
		barberID string,
		serviceID string,
	) (*models.BarberServicePrice, error)

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		barberID string,
		weekday int,
	) (*models.WorkingHours, error)

	ListReservationsForDay(
		ctx context.Context,
		barberID string,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)

	// -------- Reservation (create / conflict) --------
	AssertNoTimeConflict(
		ctx context.Context,
		barberID string,
		start time.Time,
		end time.Time,
	) error

	CreateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// -------- Reservation (state change) --------
	GetReservationForClient(
		ctx context.Context,
		reservationID string,
		clientID string,
	) (*models.Reservation, error)

	GetReservationForBarber(
		ctx context.Context,
		reservationID string,
		barberID string,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	// -------- Payments --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	// -------- Listings --------
	ListReservationsForClient(
		ctx context.Context,
		clientID string,
	) ([]models.Reservation, error)

	ListReservationsForBarber(
		ctx context.Context,
		barberID string,
		start time.Time,
		end time.Time,
	) ([]models.Reservation, error)
}
