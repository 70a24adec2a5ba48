package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *ReservationGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("id = ? AND active = true", id).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ReservationGormRepository) FindServiceByTitle(
	ctx context.Context,
	title string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("LOWER(title) = LOWER(?) AND active = true", title).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ReservationGormRepository) ListActiveServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("active = true").
		Order("title ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *ReservationGormRepository) ListAvailableBarbers(
	ctx context.Context,
) ([]models.Profile, error) {

	var barbers []models.Profile
	if err := r.db.WithContext(ctx).
		Where("role = ? AND barber_status = ?",
			string(domain.RoleBarbero), models.BarberStatusAvailable).
		Order("full_name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *ReservationGormRepository) GetBarber(
	ctx context.Context,
	id string,
) (*models.Profile, error) {

	var barber models.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, string(domain.RoleBarbero)).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ReservationGormRepository) GetCustomPrice(
	ctx context.Context,
	barberID string,
	serviceID string,
) (*models.BarberServicePrice, error) {

	var price models.BarberServicePrice
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND service_id = ? AND available = true",
			barberID, serviceID).
		First(&price).Error; err != nil {
		return nil, err
	}
	return &price, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ReservationGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID string,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *ReservationGormRepository) ListReservationsForDay(
	ctx context.Context,
	barberID string,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var res []models.Reservation
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"barber_id = ? AND status IN ('pending','confirmed') AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// --------------------------------------------------
// Reservation (create / conflict)
// --------------------------------------------------

func (r *ReservationGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	barberID string,
	start time.Time,
	end time.Time,
) error {
	return assertNoConflict(r.db.WithContext(ctx), barberID, start, end)
}

func assertNoConflict(tx *gorm.DB, barberID string, start, end time.Time) error {
	var count int64
	if err := tx.
		Model(&models.Reservation{}).
		Where(
			"barber_id = ? AND status IN ('pending','confirmed') AND start_time < ? AND end_time > ?",
			barberID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	return nil
}

// CreateReservation vuelve a verificar el conflicto dentro de la
// transacción, serializada por barbero con un advisory lock: dos
// inserts simultáneos del mismo slot ya no pueden verse mutuamente
// con count=0. El assert previo del caso de uso queda como chequeo
// rápido sin lock.
func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			res.BarberID,
		).Error; err != nil {
			return err
		}

		if err := assertNoConflict(tx, res.BarberID, res.StartTime, res.EndTime); err != nil {
			return err
		}

		return tx.Create(res).Error
	})
}

// --------------------------------------------------
// Reservation (state change)
// --------------------------------------------------

// GetReservationForClient precarga el Client: el cobro con tarjeta
// usa su email como pagador en la pasarela.
func (r *ReservationGormRepository) GetReservationForClient(
	ctx context.Context,
	reservationID string,
	clientID string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ? AND client_id = ?", reservationID, clientID).
		First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) GetReservationForBarber(
	ctx context.Context,
	reservationID string,
	barberID string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", reservationID, barberID).
		First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

func (r *ReservationGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *ReservationGormRepository) ListReservationsForClient(
	ctx context.Context,
	clientID string,
) ([]models.Reservation, error) {

	var res []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ReservationGormRepository) ListReservationsForBarber(
	ctx context.Context,
	barberID string,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var res []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
