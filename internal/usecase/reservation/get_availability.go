package reservation

import (
	"context"
	"time"

	domain "github.com/estilobarber/reservas-api/internal/domain/reservation"
	"github.com/estilobarber/reservas-api/internal/httperr"
	"github.com/estilobarber/reservas-api/internal/models"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.AvailableSlot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	weekday := int(in.Date.Weekday())

	wh, err := uc.repo.GetWorkingHours(ctx, in.BarberID, weekday)
	if err != nil || !wh.Active {
		return []domain.AvailableSlot{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(wh.StartTime)
	dayEnd := parseHM(wh.EndTime)

	hasLunch := wh.LunchStart != "" && wh.LunchEnd != ""
	var lunchStart, lunchEnd time.Time
	if hasLunch {
		lunchStart = parseHM(wh.LunchStart)
		lunchEnd = parseHM(wh.LunchEnd)
	}

	reservations, err := uc.repo.ListReservationsForDay(
		ctx,
		in.BarberID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	return computeSlots(service, dayStart, dayEnd,
		hasLunch, lunchStart, lunchEnd, reservations), nil
}

// computeSlots recorre el expediente en pasos del largo del
// servicio. Los intervalos que pisan una reserva vigente se emiten
// con IsAvailable=false; los que caen en el almuerzo no se emiten.
func computeSlots(
	service *models.Service,
	dayStart, dayEnd time.Time,
	hasLunch bool,
	lunchStart, lunchEnd time.Time,
	reservations []models.Reservation,
) []domain.AvailableSlot {

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	slots := []domain.AvailableSlot{}

	resIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasLunch && slotStart.Before(lunchEnd) && slotEnd.After(lunchStart) {
			continue
		}

		for resIdx < len(reservations) && !reservations[resIdx].EndTime.After(slotStart) {
			resIdx++
		}

		available := true
		if resIdx < len(reservations) {
			res := reservations[resIdx]
			if slotStart.Before(res.EndTime) && slotEnd.After(res.StartTime) {
				available = false
			}
		}

		slots = append(slots, domain.AvailableSlot{
			StartTime:   slotStart.Format("15:04:05"),
			EndTime:     slotEnd.Format("15:04:05"),
			IsAvailable: available,
		})
	}

	return slots
}

// DateWindow devuelve el horizonte de reserva: hoy y los días
// siguientes hasta completar days fechas, en formato YYYY-MM-DD.
func DateWindow(now time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return dates
}
