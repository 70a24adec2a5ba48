package dto

import "time"

type ReservationListDTO struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"total_price"`
	ClientName   string    `json:"client_name,omitempty"`
	BarberName   string    `json:"barber_name,omitempty"`
	ServiceTitle string    `json:"service_title"`
}
