package reservation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/estilobarber/reservas-api/internal/audit"
	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/infra/payment"
	"github.com/estilobarber/reservas-api/internal/models"
)

var errNotFound = gorm.ErrRecordNotFound

type fakeRepo struct {
	services     map[string]*models.Service
	barbers      map[string]*models.Profile
	clients      map[string]*models.Profile
	customPrices map[string]*models.BarberServicePrice // barberID+"/"+serviceID
	workingHours map[int]*models.WorkingHours
	reservations map[string]*models.Reservation

	dayReservations []models.Reservation

	conflictErr    error
	customPriceErr error

	created  []*models.Reservation
	updated  []*models.Reservation
	payments []*models.Payment

	createPaymentErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[string]*models.Service{},
		barbers:      map[string]*models.Profile{},
		clients:      map[string]*models.Profile{},
		customPrices: map[string]*models.BarberServicePrice{},
		workingHours: map[int]*models.WorkingHours{},
		reservations: map[string]*models.Reservation{},
	}
}

func (f *fakeRepo) GetService(_ context.Context, id string) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) FindServiceByTitle(_ context.Context, title string) (*models.Service, error) {
	for _, s := range f.services {
		if s.Title == title {
			return s, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListActiveServices(_ context.Context) ([]models.Service, error) {
	out := []models.Service{}
	for _, s := range f.services {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAvailableBarbers(_ context.Context) ([]models.Profile, error) {
	out := []models.Profile{}
	for _, b := range f.barbers {
		if b.BarberStatus == models.BarberStatusAvailable {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, id string) (*models.Profile, error) {
	if b, ok := f.barbers[id]; ok {
		return b, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetCustomPrice(_ context.Context, barberID, serviceID string) (*models.BarberServicePrice, error) {
	if f.customPriceErr != nil {
		return nil, f.customPriceErr
	}
	if p, ok := f.customPrices[barberID+"/"+serviceID]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetWorkingHours(_ context.Context, _ string, weekday int) (*models.WorkingHours, error) {
	if wh, ok := f.workingHours[weekday]; ok {
		return wh, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListReservationsForDay(_ context.Context, _ string, _, _ time.Time) ([]models.Reservation, error) {
	return f.dayReservations, nil
}

func (f *fakeRepo) AssertNoTimeConflict(_ context.Context, _ string, _, _ time.Time) error {
	return f.conflictErr
}

// CreateReservation replica el contrato del adaptador real: el
// conflicto se verifica también al insertar, no solo en el assert
// previo.
func (f *fakeRepo) CreateReservation(_ context.Context, res *models.Reservation) error {
	for _, other := range f.reservations {
		if other.BarberID == res.BarberID &&
			(other.Status == "pending" || other.Status == "confirmed") &&
			other.StartTime.Before(res.EndTime) && other.EndTime.After(res.StartTime) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}
	if res.ID == "" {
		res.ID = "res-" + time.Now().Format("150405.000")
	}
	f.created = append(f.created, res)
	f.reservations[res.ID] = res
	return nil
}

func (f *fakeRepo) GetReservationForClient(_ context.Context, id, clientID string) (*models.Reservation, error) {
	if r, ok := f.reservations[id]; ok && r.ClientID == clientID {
		if p, ok := f.clients[r.ClientID]; ok {
			r.Client = *p
		}
		return r, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetReservationForBarber(_ context.Context, id, barberID string) (*models.Reservation, error) {
	if r, ok := f.reservations[id]; ok && r.BarberID == barberID {
		return r, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateReservation(_ context.Context, res *models.Reservation) error {
	f.updated = append(f.updated, res)
	f.reservations[res.ID] = res
	return nil
}

func (f *fakeRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	if f.createPaymentErr != nil {
		return f.createPaymentErr
	}
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeRepo) ListReservationsForClient(_ context.Context, clientID string) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if r.ClientID == clientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListReservationsForBarber(_ context.Context, barberID string, _, _ time.Time) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if r.BarberID == barberID {
			out = append(out, *r)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type fakeGateway struct {
	txID  string
	err   error
	calls int

	payerEmail string
}

func (g *fakeGateway) ChargeCard(_ context.Context, _ float64, _ payment.Card, payerEmail, _ string) (string, error) {
	g.calls++
	g.payerEmail = payerEmail
	if g.err != nil {
		return "", g.err
	}
	return g.txID, nil
}

type nopSink struct{}

func (nopSink) Log(*string, string, string, *string, any) error { return nil }

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{}, zerolog.Nop())
}

func isBusinessCode(err error, code string) bool {
	return httperr.IsBusiness(err, code)
}
