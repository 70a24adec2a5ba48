package reservation

import (
	"context"

	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/infra/cache"
	"github.com/estilobarber/reservas-api/internal/models"
)

// ListAvailableBarbers alimenta el paso 2 del asistente: solo
// barberos con role=barbero y estado disponible. Un barbero que se
// deshabilita después de este fetch no se revalida hasta la
// consulta de slots.
type ListAvailableBarbers struct {
	repo  domain.Repository
	cache *cache.Catalog
}

func NewListAvailableBarbers(
	repo domain.Repository,
	catalog *cache.Catalog,
) *ListAvailableBarbers {
	return &ListAvailableBarbers{
		repo:  repo,
		cache: catalog,
	}
}

func (uc *ListAvailableBarbers) Execute(
	ctx context.Context,
) ([]models.Profile, error) {

	if uc.cache != nil {
		if barbers, ok := uc.cache.GetBarbers(ctx); ok {
			return barbers, nil
		}
	}

	barbers, err := uc.repo.ListAvailableBarbers(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.SetBarbers(ctx, barbers)
	}

	return barbers, nil
}
