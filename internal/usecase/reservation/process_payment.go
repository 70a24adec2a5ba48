package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/estilobarber/reservas-api/internal/audit"
	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/infra/payment"
	"github.com/estilobarber/reservas-api/internal/models"
)

const (
	MethodCash = "cash"
	MethodCard = "card"
)

type Gateway interface {
	ChargeCard(
		ctx context.Context,
		amount float64,
		card payment.Card,
		payerEmail string,
		description string,
	) (string, error)
}

type ProcessPaymentInput struct {
	ReservationID string
	ClientID      string
	Method        string
	Card          *payment.Card
}

type ProcessPayment struct {
	repo    domain.Repository
	gateway Gateway
	audit   *audit.Dispatcher
	loc     *time.Location
	log     zerolog.Logger
}

func NewProcessPayment(
	repo domain.Repository,
	gateway Gateway,
	auditDispatcher *audit.Dispatcher,
	loc *time.Location,
	log zerolog.Logger,
) *ProcessPayment {
	return &ProcessPayment{
		repo:    repo,
		gateway: gateway,
		audit:   auditDispatcher,
		loc:     loc,
		log:     log,
	}
}

// Execute cobra (o registra pago en efectivo) y confirma la
// reserva. Si el cobro falla, la reserva pending recién creada se
// cancela como compensación: no quedan reservas huérfanas
// esperando un pago que nunca llegó.
func (uc *ProcessPayment) Execute(
	ctx context.Context,
	in ProcessPaymentInput,
) (*models.Payment, error) {

	res, err := uc.repo.GetReservationForClient(ctx, in.ReservationID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	if domain.Status(res.Status) != domain.StatusPending {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	var transactionID string

	switch in.Method {
	case MethodCash:
		// Se paga en el local; la reserva se confirma igual.

	case MethodCard:
		if in.Card == nil {
			return nil, httperr.ErrBusiness("missing_card_details")
		}

		payerEmail := res.Client.Email
		description := fmt.Sprintf("Reserva %s", res.ID)

		transactionID, err = uc.gateway.ChargeCard(
			ctx,
			res.TotalPrice,
			*in.Card,
			payerEmail,
			description,
		)
		if err != nil {
			uc.compensate(ctx, res, in.ClientID)
			uc.log.Warn().Err(err).Str("reservation_id", res.ID).Msg("card charge failed")
			return nil, httperr.ErrBusiness(httperr.CodePaymentFailed)
		}

	default:
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	pay := &models.Payment{
		ReservationID: res.ID,
		Method:        in.Method,
		Amount:        res.TotalPrice,
		Status:        "completed",
		TransactionID: transactionID,
	}

	if err := uc.repo.CreatePayment(ctx, pay); err != nil {
		uc.compensate(ctx, res, in.ClientID)
		return nil, err
	}

	now := time.Now().In(uc.loc)
	if err := domain.Confirm(res, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "payment_confirmed",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{
			"method": in.Method,
			"amount": res.TotalPrice,
		},
	})

	return pay, nil
}

func (uc *ProcessPayment) compensate(
	ctx context.Context,
	res *models.Reservation,
	clientID string,
) {
	now := time.Now().In(uc.loc)
	if err := domain.Cancel(res, now); err != nil {
		return
	}
	if err := uc.repo.UpdateReservation(ctx, res); err != nil {
		uc.log.Error().Err(err).Str("reservation_id", res.ID).
			Msg("compensating cancel failed, reservation left pending")
		return
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &clientID,
		Action:   "reservation_cancelled",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"reason": "payment_failed"},
	})
}
