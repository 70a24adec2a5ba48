package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile es la cuenta de cualquier usuario del sitio: clientes,
// barberos y administradores comparten la misma tabla y se
// distinguen por Role.
type Profile struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Role string `gorm:"size:20;default:'cliente'" json:"role"`

	// Solo para role=barbero
	AvatarURL       string `gorm:"size:255" json:"avatar_url,omitempty"`
	ExperienceYears int    `json:"experience_years,omitempty"`
	WorkShift       string `gorm:"size:30" json:"work_shift,omitempty"`
	BarberStatus    string `gorm:"size:20" json:"barber_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

const (
	BarberStatusAvailable   = "available"
	BarberStatusUnavailable = "unavailable"
)
