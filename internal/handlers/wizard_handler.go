package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/estilobarber/reservas-api/internal/config"
	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/httpresp"
	"github.com/estilobarber/reservas-api/internal/infra/payment"
	"github.com/estilobarber/reservas-api/internal/middleware"
	"github.com/estilobarber/reservas-api/internal/models"
	uc "github.com/estilobarber/reservas-api/internal/usecase/reservation"
	"github.com/estilobarber/reservas-api/internal/wizard"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// WizardHandler orquesta el asistente de reserva de cinco pasos.
// Renderiza un solo paso por vez (el cliente pregunta por el estado
// y muestra el paso activo); todas las mutaciones entran por el
// dispatch de la sesión.
type WizardHandler struct {
	store        *wizard.Store
	repo         domain.Repository
	barbers      *uc.ListAvailableBarbers
	availability *uc.GetAvailability
	quote        *uc.QuotePrice
	create       *uc.CreateReservation
	pay          *uc.ProcessPayment
	cfg          *config.Config
	loc          *time.Location
	log          zerolog.Logger
}

func NewWizardHandler(
	store *wizard.Store,
	repo domain.Repository,
	barbers *uc.ListAvailableBarbers,
	availability *uc.GetAvailability,
	quote *uc.QuotePrice,
	create *uc.CreateReservation,
	pay *uc.ProcessPayment,
	cfg *config.Config,
	loc *time.Location,
	log zerolog.Logger,
) *WizardHandler {
	return &WizardHandler{
		store:        store,
		repo:         repo,
		barbers:      barbers,
		availability: availability,
		quote:        quote,
		create:       create,
		pay:          pay,
		cfg:          cfg,
		loc:          loc,
		log:          log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type selectServiceRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
}

type selectBarberRequest struct {
	BarberID string `json:"barber_id" binding:"required"`
}

type selectDateTimeRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:MM:SS
}

type customerInfoRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type cardDetailsRequest struct {
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
}

type submitPaymentRequest struct {
	Method      string              `json:"method" binding:"required,oneof=cash card"`
	CardDetails *cardDetailsRequest `json:"card_details"`
}

////////////////////////////////////////////////////////
// LIFECYCLE
////////////////////////////////////////////////////////

// Start crea una sesión nueva. Un deep link `?service=` prellena la
// selección de servicio (por id o por título) sin avanzar de paso.
func (h *WizardHandler) Start(c *gin.Context) {
	sess := h.store.Create()

	if param := strings.TrimSpace(c.Query("service")); param != "" {
		ctx, cancel := h.collabCtx(c)
		defer cancel()

		svc, err := h.repo.GetService(ctx, param)
		if err != nil {
			svc, err = h.repo.FindServiceByTitle(ctx, param)
		}
		if err == nil {
			sess.Dispatch(wizard.SetService{Service: serviceOption(svc)})
		}
	}

	httpresp.Created(c, h.view(sess))
}

func (h *WizardHandler) GetState(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.view(sess))
}

// Cancel descarta la sesión y todo su estado.
func (h *WizardHandler) Cancel(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.store.Delete(sess.ID)
	c.Status(http.StatusNoContent)
}

////////////////////////////////////////////////////////
// STEP 1 — SERVICE
////////////////////////////////////////////////////////

func (h *WizardHandler) SelectService(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req selectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ctx, cancel := h.collabCtx(c)
	defer cancel()

	svc, err := h.repo.GetService(ctx, req.ServiceID)
	if err != nil {
		sess.Dispatch(wizard.SetError{Field: wizard.FieldService, Message: "Servicio no encontrado."})
		c.JSON(http.StatusBadRequest, h.view(sess))
		return
	}

	sess.Dispatch(wizard.SetService{Service: serviceOption(svc)})
	c.JSON(http.StatusOK, h.view(sess))
}

////////////////////////////////////////////////////////
// STEP 2 — BARBER
////////////////////////////////////////////////////////

func (h *WizardHandler) ListBarbers(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	ctx, cancel := h.collabCtx(c)
	defer cancel()

	barbers, err := h.barbers.Execute(ctx)
	if err != nil {
		sess.Dispatch(wizard.SetError{Field: wizard.FieldBarber, Message: "Error al cargar los barberos."})
		c.JSON(http.StatusBadGateway, h.view(sess))
		return
	}

	options := make([]wizard.BarberOption, 0, len(barbers))
	for i := range barbers {
		options = append(options, barberOption(&barbers[i]))
	}

	c.JSON(http.StatusOK, gin.H{"barbers": options})
}

func (h *WizardHandler) SelectBarber(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req selectBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ctx, cancel := h.collabCtx(c)
	defer cancel()

	barber, err := h.repo.GetBarber(ctx, req.BarberID)
	if err != nil || barber.BarberStatus != models.BarberStatusAvailable {
		sess.Dispatch(wizard.SetError{Field: wizard.FieldBarber, Message: "Barbero no disponible."})
		c.JSON(http.StatusBadRequest, h.view(sess))
		return
	}

	sess.Dispatch(wizard.SetBarber{Barber: barberOption(barber)})
	c.JSON(http.StatusOK, h.view(sess))
}

////////////////////////////////////////////////////////
// STEP 3 — DATE & TIME
////////////////////////////////////////////////////////

func (h *WizardHandler) ListDates(c *gin.Context) {
	now := time.Now().In(h.loc)
	c.JSON(http.StatusOK, gin.H{
		"dates": uc.DateWindow(now, h.cfg.BookingHorizonDays),
	})
}

func (h *WizardHandler) ListSlots(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}
	if !h.withinHorizon(dateStr) {
		httperr.BadRequest(c, "date_out_of_range", "La fecha está fuera del horizonte de reserva.")
		return
	}

	state := sess.Snapshot()
	if state.SelectedService == nil || state.SelectedBarber == nil {
		httperr.BadRequest(c, "missing_selection", "Selecciona servicio y barbero primero.")
		return
	}

	// Token de generación: si el usuario cambió de fecha mientras
	// este fetch estaba en vuelo, el resultado tardío se descarta.
	gen := sess.BeginSlotFetch(dateStr)

	ctx, cancel := h.collabCtx(c)
	defer cancel()

	slots, err := h.availability.Execute(ctx, domain.AvailabilityInput{
		BarberID:  state.SelectedBarber.ID,
		ServiceID: state.SelectedService.ID,
		Date:      date,
	})
	if err != nil {
		sess.Dispatch(wizard.SetError{Field: wizard.FieldDateTime, Message: "Error al cargar los horarios disponibles."})
		c.JSON(http.StatusBadGateway, h.view(sess))
		return
	}

	if !sess.SlotFetchCurrent(gen) {
		c.JSON(http.StatusConflict, gin.H{"stale": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

func (h *WizardHandler) SelectDateTime(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req selectDateTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if !h.withinHorizon(req.Date) {
		httperr.BadRequest(c, "date_out_of_range", "La fecha está fuera del horizonte de reserva.")
		return
	}

	sess.Dispatch(wizard.SetDateTime{DateTime: wizard.DateTime{
		Date: req.Date,
		Time: req.Time,
	}})
	c.JSON(http.StatusOK, h.view(sess))
}

////////////////////////////////////////////////////////
// STEP 4 — SUMMARY / CUSTOMER INFO
////////////////////////////////////////////////////////

func (h *WizardHandler) SetCustomerInfo(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req customerInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	sess.Dispatch(wizard.SetCustomerInfo{Info: wizard.CustomerInfo{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}})
	sess.SetNotes(req.Notes)

	c.JSON(http.StatusOK, h.view(sess))
}

////////////////////////////////////////////////////////
// NAVIGATION
////////////////////////////////////////////////////////

func (h *WizardHandler) Next(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var advanced bool
	state := sess.Update(func(s wizard.State) wizard.State {
		next, ok := wizard.Continue(s)
		advanced = ok
		return next
	})

	if !advanced {
		c.JSON(http.StatusUnprocessableEntity, h.view(sess))
		return
	}

	// Al cerrar el resumen se pide la cotización real para que el
	// paso de pago no muestre un total en cero.
	if state.CurrentStep == wizard.StepPayment && wizard.ReadyToSubmit(state) {
		ctx, cancel := h.collabCtx(c)
		defer cancel()

		price, err := h.quote.Execute(ctx, state.SelectedService.ID, state.SelectedBarber.ID)
		if err != nil {
			h.log.Warn().Err(err).Str("session_id", sess.ID).Msg("price quote failed")
		} else {
			sess.Dispatch(wizard.SetTotalPrice{Amount: price})
		}
	}

	c.JSON(http.StatusOK, h.view(sess))
}

func (h *WizardHandler) Back(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	sess.Dispatch(wizard.PrevStep{})
	c.JSON(http.StatusOK, h.view(sess))
}

////////////////////////////////////////////////////////
// STEP 5 — PAYMENT (terminal)
////////////////////////////////////////////////////////

func (h *WizardHandler) SubmitPayment(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	info := wizard.PaymentInfo{Method: wizard.PaymentMethod(req.Method)}
	if req.CardDetails != nil {
		info.Card = &wizard.CardDetails{
			Number:     req.CardDetails.CardNumber,
			Expiry:     req.CardDetails.ExpiryDate,
			CVV:        req.CardDetails.CVV,
			HolderName: req.CardDetails.CardholderName,
		}
	}

	// Puerta atómica: un solo submit puede estar en vuelo, y una
	// sesión ya confirmada no vuelve a crear ni a cobrar.
	state, gate := sess.BeginSubmit(info)
	switch gate {
	case wizard.SubmitBusy:
		httperr.Conflict(c, "payment_in_progress", "Ya hay un pago en curso para esta sesión.")
		return
	case wizard.SubmitDone:
		httperr.Conflict(c, "reservation_already_confirmed", "La reserva de esta sesión ya fue confirmada.")
		return
	case wizard.SubmitNotReady:
		c.JSON(http.StatusUnprocessableEntity, h.view(sess))
		return
	}

	clientID := c.MustGet(middleware.ContextUserID).(string)

	ctx, cancel := h.collabCtx(c)
	defer cancel()

	res, err := h.create.Execute(ctx, uc.CreateReservationInput{
		ClientID:  clientID,
		ServiceID: state.SelectedService.ID,
		BarberID:  state.SelectedBarber.ID,
		Date:      state.SelectedDateTime.Date,
		Time:      state.SelectedDateTime.Time,
		Notes:     buildNotes(state.CustomerInfo, sess.Notes()),
	})
	if err != nil {
		h.failSubmit(c, sess, err)
		return
	}

	var card *payment.Card
	if req.Method == uc.MethodCard && req.CardDetails != nil {
		card = &payment.Card{
			Number:     req.CardDetails.CardNumber,
			Expiry:     req.CardDetails.ExpiryDate,
			CVV:        req.CardDetails.CVV,
			HolderName: req.CardDetails.CardholderName,
		}
	}

	pay, err := h.pay.Execute(ctx, uc.ProcessPaymentInput{
		ReservationID: res.ID,
		ClientID:      clientID,
		Method:        req.Method,
		Card:          card,
	})
	if err != nil {
		h.failSubmit(c, sess, err)
		return
	}

	// La sesión queda terminal de inmediato; el delay solo gobierna
	// cuánto tiempo puede consultarse la confirmación antes de que
	// el store la limpie.
	sess.FinishSubmit(true)
	h.store.DeleteAfter(sess.ID, h.cfg.ConfirmationResetDelay)

	httpresp.Created(c, gin.H{
		"reservation_id": res.ID,
		"status":         res.Status,
		"total_price":    res.TotalPrice,
		"payment": gin.H{
			"method":         pay.Method,
			"transaction_id": pay.TransactionID,
		},
		"reset_in_seconds": int(h.cfg.ConfirmationResetDelay.Seconds()),
	})
}

// failSubmit deja la sesión reutilizable: selecciones intactas,
// isProcessing en false y el error del envío visible.
func (h *WizardHandler) failSubmit(c *gin.Context, sess *wizard.Session, err error) {
	status := http.StatusBadRequest
	message := "No se pudo completar la reserva."

	switch httperr.BusinessCode(err) {
	case httperr.CodeTimeConflict, httperr.CodeSlotUnavailable:
		status = http.StatusConflict
		message = "El horario seleccionado ya no está disponible. Elige otro horario."
	case httperr.CodePaymentFailed:
		status = http.StatusPaymentRequired
		message = "No pudimos procesar el pago. Intenta nuevamente."
	case "too_soon":
		message = "El horario elegido ya no cumple la antelación mínima."
	case "":
		status = http.StatusBadGateway
	}

	sess.FinishSubmit(false)
	sess.Dispatch(wizard.SetError{Field: wizard.FieldSubmit, Message: message})
	c.JSON(status, h.view(sess))
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *WizardHandler) session(c *gin.Context) (*wizard.Session, bool) {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "session_not_found", "La sesión de reserva no existe o expiró.")
		return nil, false
	}
	return sess, true
}

func (h *WizardHandler) collabCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.cfg.CollaboratorTimeout)
}

func (h *WizardHandler) withinHorizon(date string) bool {
	now := time.Now().In(h.loc)
	for _, d := range uc.DateWindow(now, h.cfg.BookingHorizonDays) {
		if d == date {
			return true
		}
	}
	return false
}

func (h *WizardHandler) view(sess *wizard.Session) gin.H {
	state := sess.Snapshot()
	return gin.H{
		"session_id": sess.ID,
		"state":      state,
		"progress":   wizard.ProgressFor(state.CurrentStep),
	}
}

func buildNotes(info wizard.CustomerInfo, extra string) string {
	notes := fmt.Sprintf("Cliente: %s - Email: %s", info.Name, info.Email)
	if info.Phone != "" {
		notes += " - Tel: " + info.Phone
	}
	if extra = strings.TrimSpace(extra); extra != "" {
		notes += " - Notas: " + extra
	}
	return notes
}

func serviceOption(svc *models.Service) wizard.ServiceOption {
	opt := wizard.ServiceOption{
		ID:          svc.ID,
		Title:       svc.Title,
		Description: svc.Description,
		Icon:        svc.Icon,
		DurationMin: svc.DurationMin,
		Price:       svc.BasePrice,
	}
	for _, p := range svc.Prices {
		opt.Variants = append(opt.Variants, wizard.PriceVariant{
			Variant: p.Variant,
			Price:   p.Price,
		})
	}
	return opt
}

func barberOption(p *models.Profile) wizard.BarberOption {
	return wizard.BarberOption{
		ID:              p.ID,
		FullName:        p.FullName,
		AvatarURL:       p.AvatarURL,
		ExperienceYears: p.ExperienceYears,
		WorkShift:       p.WorkShift,
		Status:          p.BarberStatus,
	}
}
