package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrivatePatient is a professional's own patient, outside the convenio.
// Consultations referencing a private patient pay 100% to the professional.
type PrivatePatient struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_id"`
	FullName       string    `gorm:"type:varchar(255);not null" json:"full_name"`
	PhoneNumber    string    `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (PrivatePatient) TableName() string {
	return "private_patients"
}
