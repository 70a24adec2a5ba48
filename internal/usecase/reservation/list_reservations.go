package reservation

import (
	"context"
	"time"

	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/dto"
)

type ListClientReservations struct {
	repo domain.Repository
}

func NewListClientReservations(repo domain.Repository) *ListClientReservations {
	return &ListClientReservations{repo: repo}
}

func (uc *ListClientReservations) Execute(
	ctx context.Context,
	clientID string,
) ([]dto.ReservationListDTO, error) {

	reservations, err := uc.repo.ListReservationsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, dto.ReservationListDTO{
			ID:           res.ID,
			StartTime:    res.StartTime,
			EndTime:      res.EndTime,
			Status:       res.Status,
			TotalPrice:   res.TotalPrice,
			BarberName:   res.Barber.FullName,
			ServiceTitle: res.Service.Title,
		})
	}

	return out, nil
}

type ListBarberAgenda struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListBarberAgenda(repo domain.Repository, loc *time.Location) *ListBarberAgenda {
	return &ListBarberAgenda{repo: repo, loc: loc}
}

func (uc *ListBarberAgenda) Execute(
	ctx context.Context,
	barberID string,
	date time.Time,
) ([]dto.ReservationListDTO, error) {

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		uc.loc,
	)
	end := start.Add(24 * time.Hour)

	reservations, err := uc.repo.ListReservationsForBarber(
		ctx,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, dto.ReservationListDTO{
			ID:           res.ID,
			StartTime:    res.StartTime,
			EndTime:      res.EndTime,
			Status:       res.Status,
			TotalPrice:   res.TotalPrice,
			ClientName:   res.Client.FullName,
			ServiceTitle: res.Service.Title,
		})
	}

	return out, nil
}
