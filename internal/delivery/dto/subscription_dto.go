package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ActivateSubscriptionRequest struct {
	MemberID  uuid.UUID `json:"member_id" validate:"required"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

// PaymentConfirmedRequest is the payment-gateway confirmation contract.
// Target selects titular (member user id) or dependente (dependent id).
type PaymentConfirmedRequest struct {
	UserID           uuid.UUID       `json:"user_id" validate:"required"`
	AmountPaid       decimal.Decimal `json:"amount_paid" validate:"required"`
	PaymentReference string          `json:"payment_reference" validate:"required,max=100"`
	Target           string          `json:"target" validate:"required,oneof=titular dependente"`
	CouponCode       string          `json:"coupon_code" validate:"omitempty,max=50"`
}

// Response DTOs

type SubscriptionResponse struct {
	MemberID  uuid.UUID  `json:"member_id"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type MemberResponse struct {
	UserID                uuid.UUID           `json:"user_id"`
	FullName              string              `json:"full_name"`
	Email                 string              `json:"email"`
	Document              string              `json:"document"`
	PhoneNumber           string              `json:"phone_number,omitempty"`
	SubscriptionStatus    string              `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time          `json:"subscription_expires_at,omitempty"`
	Dependents            []DependentResponse `json:"dependents,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
	Total   int              `json:"total"`
}

type CreateDependentRequest struct {
	FullName string `json:"full_name" validate:"required,min=3,max=255"`
	Document string `json:"document" validate:"required,min=11,max=20"`
}

type UpdateDependentRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=3,max=255"`
	Document string `json:"document" validate:"omitempty,min=11,max=20"`
}

type DependentResponse struct {
	ID                    uuid.UUID  `json:"id"`
	MemberID              uuid.UUID  `json:"member_id"`
	FullName              string     `json:"full_name"`
	Document              string     `json:"document"`
	SubscriptionStatus    string     `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type DependentListResponse struct {
	Dependents []DependentResponse `json:"dependents"`
	Total      int                 `json:"total"`
}
