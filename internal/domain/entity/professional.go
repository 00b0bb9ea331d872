package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionalProfile represents professional-specific profile data.
// Percentage is the professional's share of a convenio consultation's
// value, in [0,100]; the complement stays with the clinic.
type ProfessionalProfile struct {
	UserID      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category"`
	PhoneNumber string          `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	Percentage  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentage"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User      User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Locations []AttendanceLocation `gorm:"foreignKey:ProfessionalID" json:"locations,omitempty"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}
