package reservation

import "time"

type AvailabilityInput struct {
	BarberID  string
	ServiceID string
	Date      time.Time
}

// AvailableSlot es un intervalo candidato del día. Los slots que
// chocan con una reserva vigente se reportan con IsAvailable=false
// y el cliente los filtra.
type AvailableSlot struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}
