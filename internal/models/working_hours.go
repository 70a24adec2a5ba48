package models

import "time"

type WorkingHours struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID string `gorm:"type:uuid;index" json:"barber_id"`

	Weekday int `json:"weekday"`

	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Precio personalizado de un barbero para un servicio. Si existe y
// está disponible, reemplaza el precio base del servicio.
type BarberServicePrice struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BarberID  string `gorm:"type:uuid;index:idx_barber_service,unique" json:"barber_id"`
	ServiceID string `gorm:"type:uuid;index:idx_barber_service,unique" json:"service_id"`

	CustomPrice float64 `json:"custom_price"`
	Available   bool    `gorm:"default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
