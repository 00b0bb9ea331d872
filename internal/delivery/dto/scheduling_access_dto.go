package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type GrantSchedulingAccessRequest struct {
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	ExpiresAt      time.Time `json:"expires_at" validate:"required"`
	Reason         string    `json:"reason" validate:"omitempty,max=500"`
}

type ExtendSchedulingAccessRequest struct {
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	NewExpiresAt   time.Time `json:"new_expires_at" validate:"required"`
	Reason         string    `json:"reason" validate:"omitempty,max=500"`
}

type RevokeSchedulingAccessRequest struct {
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
}

// Response DTOs

type SchedulingAccessResponse struct {
	ProfessionalID uuid.UUID  `json:"professional_id"`
	State          string     `json:"state"`
	HasAccess      bool       `json:"has_access"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	GrantedBy      *uuid.UUID `json:"granted_by,omitempty"`
	GrantedAt      *time.Time `json:"granted_at,omitempty"`
	Reason         string     `json:"reason,omitempty"`
}
