package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/estilobarber/reservas-api/internal/audit"
	"github.com/estilobarber/reservas-api/internal/config"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/infra/payment"
	"github.com/estilobarber/reservas-api/internal/middleware"
	"github.com/estilobarber/reservas-api/internal/models"
	uc "github.com/estilobarber/reservas-api/internal/usecase/reservation"
	"github.com/estilobarber/reservas-api/internal/wizard"
)

// --------------------------------------------------
// stubs
// --------------------------------------------------

type stubRepo struct {
	mu           sync.Mutex
	reservations map[string]*models.Reservation
	payments     []*models.Payment
	created      int
}

func newStubRepo() *stubRepo {
	return &stubRepo{reservations: map[string]*models.Reservation{}}
}

func stubService() *models.Service {
	return &models.Service{
		ID:          "mens-cuts",
		Title:       "CORTES DE CABALLERO",
		DurationMin: 30,
		BasePrice:   10000,
		Active:      true,
	}
}

func stubBarber() *models.Profile {
	return &models.Profile{
		ID:           "barber-1",
		FullName:     "Carlos Mendoza",
		Role:         "barbero",
		BarberStatus: models.BarberStatusAvailable,
	}
}

func (s *stubRepo) GetService(_ context.Context, id string) (*models.Service, error) {
	if id != "mens-cuts" {
		return nil, gorm.ErrRecordNotFound
	}
	return stubService(), nil
}

func (s *stubRepo) FindServiceByTitle(_ context.Context, title string) (*models.Service, error) {
	if title != "CORTES DE CABALLERO" {
		return nil, gorm.ErrRecordNotFound
	}
	return stubService(), nil
}

func (s *stubRepo) ListActiveServices(_ context.Context) ([]models.Service, error) {
	return []models.Service{*stubService()}, nil
}

func (s *stubRepo) ListAvailableBarbers(_ context.Context) ([]models.Profile, error) {
	return []models.Profile{*stubBarber()}, nil
}

func (s *stubRepo) GetBarber(_ context.Context, id string) (*models.Profile, error) {
	if id != "barber-1" {
		return nil, gorm.ErrRecordNotFound
	}
	return stubBarber(), nil
}

func (s *stubRepo) GetCustomPrice(_ context.Context, _, _ string) (*models.BarberServicePrice, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) GetWorkingHours(_ context.Context, _ string, weekday int) (*models.WorkingHours, error) {
	return &models.WorkingHours{
		Weekday:   weekday,
		StartTime: "00:00",
		EndTime:   "23:59",
		Active:    true,
	}, nil
}

func (s *stubRepo) ListReservationsForDay(_ context.Context, _ string, _, _ time.Time) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubRepo) overlaps(barberID string, start, end time.Time) bool {
	for _, other := range s.reservations {
		if other.BarberID == barberID &&
			(other.Status == "pending" || other.Status == "confirmed") &&
			other.StartTime.Before(end) && other.EndTime.After(start) {
			return true
		}
	}
	return false
}

func (s *stubRepo) AssertNoTimeConflict(_ context.Context, barberID string, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlaps(barberID, start, end) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	return nil
}

func (s *stubRepo) CreateReservation(_ context.Context, res *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlaps(res.BarberID, res.StartTime, res.EndTime) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	s.created++
	res.ID = fmt.Sprintf("res-%d", s.created)
	s.reservations[res.ID] = res
	return nil
}

func (s *stubRepo) GetReservationForClient(_ context.Context, id, clientID string) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok || res.ClientID != clientID {
		return nil, gorm.ErrRecordNotFound
	}
	res.Client = models.Profile{ID: clientID, Email: "sofia@example.com"}
	return res, nil
}

func (s *stubRepo) GetReservationForBarber(_ context.Context, _, _ string) (*models.Reservation, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) UpdateReservation(_ context.Context, res *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[res.ID] = res
	return nil
}

func (s *stubRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, p)
	return nil
}

func (s *stubRepo) ListReservationsForClient(_ context.Context, _ string) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubRepo) ListReservationsForBarber(_ context.Context, _ string, _, _ time.Time) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubRepo) createdCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.created
}

func (s *stubRepo) reservationStatus(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res, ok := s.reservations[id]; ok {
		return res.Status
	}
	return ""
}

type stubGateway struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (g *stubGateway) ChargeCard(_ context.Context, _ float64, _ payment.Card, _, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return "mp-777", nil
}

func (g *stubGateway) setErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

type nullSink struct{}

func (nullSink) Log(*string, string, string, *string, any) error { return nil }

// --------------------------------------------------
// harness
// --------------------------------------------------

type wizardTestEnv struct {
	router *gin.Engine
	store  *wizard.Store
	repo   *stubRepo
	gw     *stubGateway
}

func newWizardTestEnv() *wizardTestEnv {
	gin.SetMode(gin.TestMode)

	repo := newStubRepo()
	gw := &stubGateway{}
	disp := audit.NewDispatcher(nullSink{}, zerolog.Nop())
	loc := time.UTC

	cfg := &config.Config{
		BookingHorizonDays:     7,
		MinAdvanceMinutes:      60,
		CollaboratorTimeout:    5 * time.Second,
		ConfirmationResetDelay: time.Minute,
	}

	quote := uc.NewQuotePrice(repo)
	create := uc.NewCreateReservation(repo, quote, disp, loc, cfg.MinAdvanceMinutes)
	pay := uc.NewProcessPayment(repo, gw, disp, loc, zerolog.Nop())
	barbers := uc.NewListAvailableBarbers(repo, nil)
	avail := uc.NewGetAvailability(repo)

	store := wizard.NewStore(time.Minute)

	h := NewWizardHandler(store, repo, barbers, avail, quote, create, pay, cfg, loc, zerolog.Nop())

	r := gin.New()
	r.POST("/wizard/:id/payment", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "client-1")
		h.SubmitPayment(c)
	})

	return &wizardTestEnv{router: r, store: store, repo: repo, gw: gw}
}

// readySession deja una sesión con las tres selecciones y los datos
// de contacto, parada en el paso de pago.
func (env *wizardTestEnv) readySession() *wizard.Session {
	slot := time.Now().UTC().AddDate(0, 0, 2).Truncate(time.Hour)

	sess := env.store.Create()
	sess.Dispatch(
		wizard.SetService{Service: wizard.ServiceOption{ID: "mens-cuts", Title: "CORTES DE CABALLERO", DurationMin: 30}},
		wizard.SetBarber{Barber: wizard.BarberOption{ID: "barber-1", FullName: "Carlos Mendoza"}},
		wizard.SetDateTime{DateTime: wizard.DateTime{
			Date: slot.Format("2006-01-02"),
			Time: slot.Format("15:04:05"),
		}},
		wizard.SetCustomerInfo{Info: wizard.CustomerInfo{Name: "Sofia Ramirez", Email: "sofia@example.com"}},
		wizard.GoToStep{Step: wizard.StepPayment},
	)
	return sess
}

func (env *wizardTestEnv) submit(sessionID, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/wizard/"+sessionID+"/payment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)
	return w
}

const cashBody = `{"method":"cash"}`

const cardBody = `{
	"method": "card",
	"card_details": {
		"card_number": "4111111111111111",
		"expiry_date": "11/27",
		"cvv": "123",
		"cardholder_name": "SOFIA RAMIREZ"
	}
}`

// --------------------------------------------------
// tests
// --------------------------------------------------

func TestSubmitPaymentConfirmsReservation(t *testing.T) {
	env := newWizardTestEnv()
	sess := env.readySession()

	w := env.submit(sess.ID, cashBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		ReservationID string  `json:"reservation_id"`
		Status        string  `json:"status"`
		TotalPrice    float64 `json:"total_price"`
		Payment       struct {
			Method string `json:"method"`
		} `json:"payment"`
		ResetInSeconds int `json:"reset_in_seconds"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad confirmation payload: %v", err)
	}
	if resp.ReservationID == "" || resp.Status != "confirmed" {
		t.Fatalf("confirmation = %+v", resp)
	}
	if resp.Payment.Method != "cash" || resp.TotalPrice != 10000 {
		t.Fatalf("confirmation = %+v", resp)
	}
	if resp.ResetInSeconds <= 0 {
		t.Fatal("confirmation must announce the reset delay")
	}
	if env.repo.createdCount() != 1 {
		t.Fatalf("reservations created = %d", env.repo.createdCount())
	}
}

func TestSubmitPaymentSecondSubmitInConfirmationWindow(t *testing.T) {
	env := newWizardTestEnv()
	sess := env.readySession()

	if w := env.submit(sess.ID, cashBody); w.Code != http.StatusCreated {
		t.Fatalf("first submit status = %d", w.Code)
	}

	// la sesión sigue viva hasta que venza el delay de confirmación;
	// reenviar no debe crear ni cobrar de nuevo
	w := env.submit(sess.ID, cashBody)
	if w.Code != http.StatusConflict {
		t.Fatalf("second submit status = %d, body = %s", w.Code, w.Body.String())
	}
	if env.repo.createdCount() != 1 {
		t.Fatalf("double booking: reservations created = %d", env.repo.createdCount())
	}
}

func TestSubmitPaymentConcurrentSubmitsCreateOneReservation(t *testing.T) {
	env := newWizardTestEnv()
	sess := env.readySession()

	const attempts = 8
	codes := make(chan int, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- env.submit(sess.ID, cashBody).Code
		}()
	}
	wg.Wait()
	close(codes)

	var createdResponses int
	for code := range codes {
		if code == http.StatusCreated {
			createdResponses++
		} else if code != http.StatusConflict {
			t.Fatalf("unexpected status %d", code)
		}
	}

	if createdResponses != 1 {
		t.Fatalf("expected exactly one 201, got %d", createdResponses)
	}
	if env.repo.createdCount() != 1 {
		t.Fatalf("reservations created = %d", env.repo.createdCount())
	}
}

func TestSubmitPaymentFailureLeavesSessionRetryable(t *testing.T) {
	env := newWizardTestEnv()
	env.gw.setErr(errors.New("card_declined"))
	sess := env.readySession()

	w := env.submit(sess.ID, cardBody)
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	state := sess.Snapshot()
	if state.IsProcessing {
		t.Fatal("processing flag must clear after a failed payment")
	}
	if state.CurrentStep != wizard.StepPayment {
		t.Fatalf("step = %d, must stay on payment", state.CurrentStep)
	}
	if state.SelectedService == nil || state.SelectedBarber == nil || state.SelectedDateTime == nil {
		t.Fatal("selections must survive a failed payment")
	}
	if state.Errors[wizard.FieldSubmit] == "" {
		t.Fatalf("expected submit error, got %v", state.Errors)
	}

	// la reserva pending creada antes del cobro quedó compensada
	if got := env.repo.reservationStatus("res-1"); got != "cancelled" {
		t.Fatalf("reservation status = %q, want cancelled", got)
	}

	// con la pasarela recuperada, el reintento sobre la misma sesión
	// completa la reserva
	env.gw.setErr(nil)
	if w := env.submit(sess.ID, cardBody); w.Code != http.StatusCreated {
		t.Fatalf("retry status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := env.repo.reservationStatus("res-2"); got != "confirmed" {
		t.Fatalf("retried reservation status = %q", got)
	}
}
