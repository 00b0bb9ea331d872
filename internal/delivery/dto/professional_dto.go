package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateProfessionalRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8"`
	FullName    string          `json:"full_name" validate:"required,min=3,max=255"`
	Category    string          `json:"category" validate:"required,max=100"`
	PhoneNumber string          `json:"phone_number" validate:"omitempty,max=30"`
	Percentage  decimal.Decimal `json:"percentage" validate:"required"`
}

type UpdateProfessionalRequest struct {
	FullName    *string          `json:"full_name" validate:"omitempty,min=3,max=255"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	PhoneNumber *string          `json:"phone_number" validate:"omitempty,max=30"`
	Percentage  *decimal.Decimal `json:"percentage"`
}

type CreateServiceRequest struct {
	Name      string          `json:"name" validate:"required,min=3,max=255"`
	BasePrice decimal.Decimal `json:"base_price" validate:"required"`
}

type UpdateServiceRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=3,max=255"`
	BasePrice *decimal.Decimal `json:"base_price"`
}

type CreateLocationRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=255"`
	Address   string `json:"address" validate:"omitempty,max=500"`
	IsDefault bool   `json:"is_default"`
}

type UpdateLocationRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=3,max=255"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	IsDefault *bool   `json:"is_default"`
}

type CreatePrivatePatientRequest struct {
	FullName    string `json:"full_name" validate:"required,min=3,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
}

// Response DTOs

type ProfessionalResponse struct {
	UserID      uuid.UUID       `json:"user_id"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	Category    string          `json:"category"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Percentage  decimal.Decimal `json:"percentage"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
	Total         int                    `json:"total"`
}

type ServiceResponse struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
	CreatedAt time.Time       `json:"created_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

type LocationResponse struct {
	ID             int       `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address,omitempty"`
	IsDefault      bool      `json:"is_default"`
}

type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Total     int                `json:"total"`
}

type PrivatePatientResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	FullName       string    `json:"full_name"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type PrivatePatientListResponse struct {
	Patients []PrivatePatientResponse `json:"patients"`
	Total    int                      `json:"total"`
}
