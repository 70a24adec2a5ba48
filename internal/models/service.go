package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`
	Icon        string `gorm:"size:30" json:"icon"`
	Category    string `gorm:"size:50" json:"category"`

	DurationMin int     `gorm:"default:30" json:"duration_min"`
	BasePrice   float64 `json:"base_price"`
	Active      bool    `gorm:"default:true" json:"active"`

	// Variantes de precio (ej. "Corte + Barba")
	Prices []ServicePrice `gorm:"constraint:OnDelete:CASCADE;" json:"prices,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type ServicePrice struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ServiceID string `gorm:"type:uuid;index" json:"service_id"`

	Variant string  `gorm:"size:100;not null" json:"variant"`
	Price   float64 `json:"price"`
}
