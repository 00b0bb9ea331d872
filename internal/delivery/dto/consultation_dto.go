package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateConsultationRequest struct {
	ProfessionalID uuid.UUID       `json:"professional_id" validate:"required"`
	PatientKind    string          `json:"patient_kind" validate:"required,oneof=member dependent private"`
	PatientID      uuid.UUID       `json:"patient_id" validate:"required"`
	ServiceID      int             `json:"service_id" validate:"required,min=1"`
	LocationID     *int            `json:"location_id"`
	Value          decimal.Decimal `json:"value" validate:"required"`
	Date           time.Time       `json:"date" validate:"required"`
	Status         string          `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
	Notes          string          `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateConsultationRequest patches a consultation. The patient kind is
// immutable; only the referent within the same kind may change.
type UpdateConsultationRequest struct {
	ProfessionalID *uuid.UUID       `json:"professional_id"`
	PatientID      *uuid.UUID       `json:"patient_id"`
	ServiceID      *int             `json:"service_id" validate:"omitempty,min=1"`
	LocationID     *int             `json:"location_id"`
	Value          *decimal.Decimal `json:"value"`
	Date           *time.Time       `json:"date"`
	Status         *string          `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
	Notes          *string          `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type ConsultationResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProfessionalID   uuid.UUID       `json:"professional_id"`
	ProfessionalName string          `json:"professional_name,omitempty"`
	PatientKind      string          `json:"patient_kind"`
	PatientID        uuid.UUID       `json:"patient_id"`
	PatientType      string          `json:"patient_type"`
	ServiceID        int             `json:"service_id"`
	ServiceName      string          `json:"service_name,omitempty"`
	LocationID       *int            `json:"location_id,omitempty"`
	Value            decimal.Decimal `json:"value"`
	Date             time.Time       `json:"date"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}
