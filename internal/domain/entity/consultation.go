package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PatientKind tags the patient reference of a consultation. Exactly one
// kind is set per consultation and it never changes after creation; the
// kind alone decides convenio vs private billing.
type PatientKind string

const (
	PatientKindMember    PatientKind = "member"
	PatientKindDependent PatientKind = "dependent"
	PatientKindPrivate   PatientKind = "private"
)

// Valid reports whether the kind is one of the three known tags.
func (k PatientKind) Valid() bool {
	switch k {
	case PatientKindMember, PatientKindDependent, PatientKindPrivate:
		return true
	}
	return false
}

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	ConsultationStatusScheduled ConsultationStatus = "scheduled"
	ConsultationStatusConfirmed ConsultationStatus = "confirmed"
	ConsultationStatusCompleted ConsultationStatus = "completed"
	ConsultationStatusCancelled ConsultationStatus = "cancelled"
)

// Valid reports whether the status is a known lifecycle state.
func (s ConsultationStatus) Valid() bool {
	switch s {
	case ConsultationStatusScheduled, ConsultationStatusConfirmed,
		ConsultationStatusCompleted, ConsultationStatusCancelled:
		return true
	}
	return false
}

// Consultation records one attendance with its value, patient reference
// (kind + id pair) and convenio-vs-private classification derived from
// the patient kind.
type Consultation struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProfessionalID uuid.UUID          `gorm:"type:uuid;not null;index" json:"professional_id"`
	PatientKind    PatientKind        `gorm:"type:patient_kind;not null" json:"patient_kind"`
	PatientID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	ServiceID      int                `gorm:"not null;index" json:"service_id"`
	LocationID     *int               `gorm:"index" json:"location_id,omitempty"`
	Value          decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"value"`
	Date           time.Time          `gorm:"not null;index" json:"date"`
	Status         ConsultationStatus `gorm:"type:consultation_status;not null;default:'scheduled';index" json:"status"`
	Notes          string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Service      Service             `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// IsConvenio reports whether the consultation is billed under the
// convenio (patient is a titular or dependent).
func (c *Consultation) IsConvenio() bool {
	return c.PatientKind == PatientKindMember || c.PatientKind == PatientKindDependent
}

// CountsForRevenue reports whether the consultation enters revenue
// reports (confirmed or completed).
func (c *Consultation) CountsForRevenue() bool {
	return c.Status == ConsultationStatusConfirmed || c.Status == ConsultationStatusCompleted
}

// IsCancelled checks if the consultation is cancelled
func (c *Consultation) IsCancelled() bool {
	return c.Status == ConsultationStatusCancelled
}
