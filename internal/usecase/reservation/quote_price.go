package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
)

// QuotePrice resuelve el precio autoritativo de una combinación
// servicio+barbero: el precio personalizado del barbero si existe,
// el precio base del servicio si no. El asistente lo pide al cerrar
// el resumen para mostrar el total real antes del pago; la creación
// vuelve a calcularlo, la cotización es solo informativa.
type QuotePrice struct {
	repo domain.Repository
}

func NewQuotePrice(repo domain.Repository) *QuotePrice {
	return &QuotePrice{repo: repo}
}

func (uc *QuotePrice) Execute(
	ctx context.Context,
	serviceID string,
	barberID string,
) (float64, error) {

	service, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return 0, httperr.ErrBusiness("service_not_found")
	}

	custom, err := uc.repo.GetCustomPrice(ctx, barberID, serviceID)
	switch {
	case err == nil:
		return custom.CustomPrice, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// sin precio personalizado: rige el precio base
		return service.BasePrice, nil
	default:
		return 0, err
	}
}
