package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reservation struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID string  `gorm:"type:uuid;index" json:"client_id"`
	Client   Profile `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	BarberID string  `gorm:"type:uuid;index" json:"barber_id"`
	Barber   Profile `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID string  `gorm:"type:uuid" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	TotalPrice float64 `json:"total_price"`
	Notes      string  `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID string      `gorm:"type:uuid;index" json:"reservation_id"`
	Reservation   Reservation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Method string  `gorm:"size:10;not null" json:"method"`
	Amount float64 `json:"amount"`
	Status string  `gorm:"size:20;default:'completed'" json:"status"`

	TransactionID string `gorm:"size:100" json:"transaction_id"`

	CreatedAt time.Time `json:"created_at"`
}
