package entity

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceLocation is a place where a professional attends patients.
// At most one location per professional is the default.
type AttendanceLocation struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index" json:"professional_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	IsDefault      bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (AttendanceLocation) TableName() string {
	return "attendance_locations"
}
