package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/cardtoken"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
)

// Card son los datos crudos que llegan del paso de pago. No se
// validan ni almacenan: se tokenizan y se descartan.
type Card struct {
	Number     string
	Expiry     string // MM/YY
	CVV        string
	HolderName string
}

type Gateway interface {
	ChargeCard(
		ctx context.Context,
		amount float64,
		card Card,
		payerEmail string,
		description string,
	) (transactionID string, err error)
}

// --------------------------------------------------
// MercadoPago
// --------------------------------------------------

type MercadoPagoGateway struct {
	tokens   cardtoken.Client
	payments mppayment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{
		tokens:   cardtoken.NewClient(cfg),
		payments: mppayment.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) ChargeCard(
	ctx context.Context,
	amount float64,
	card Card,
	payerEmail string,
	description string,
) (string, error) {

	month, year, err := splitExpiry(card.Expiry)
	if err != nil {
		return "", err
	}

	token, err := g.tokens.Create(ctx, cardtoken.Request{
		CardNumber:      strings.ReplaceAll(card.Number, " ", ""),
		ExpirationMonth: month,
		ExpirationYear:  year,
		SecurityCode:    card.CVV,
		Cardholder: &cardtoken.CardholderRequest{
			Name: card.HolderName,
		},
	})
	if err != nil {
		return "", fmt.Errorf("card tokenization: %w", err)
	}

	resource, err := g.payments.Create(ctx, mppayment.Request{
		TransactionAmount: amount,
		Token:             token.ID,
		Description:       description,
		Installments:      1,
		Payer: &mppayment.PayerRequest{
			Email: payerEmail,
		},
	})
	if err != nil {
		return "", fmt.Errorf("payment create: %w", err)
	}

	if resource.Status != "approved" {
		return "", fmt.Errorf("payment not approved: %s (%s)",
			resource.Status, resource.StatusDetail)
	}

	return fmt.Sprintf("%d", resource.ID), nil
}

func splitExpiry(expiry string) (month, year string, err error) {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", "", fmt.Errorf("invalid expiry %q, expected MM/YY", expiry)
	}
	return parts[0], "20" + parts[1], nil
}
