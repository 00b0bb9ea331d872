package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAffiliateRequest struct {
	UserID           uuid.UUID       `json:"user_id" validate:"required"`
	ReferralCode     string          `json:"referral_code" validate:"required,min=3,max=32"`
	CommissionAmount decimal.Decimal `json:"commission_amount" validate:"required"`
	PixKey           string          `json:"pix_key" validate:"omitempty,max=140"`
}

type UpdateAffiliateRequest struct {
	Status           *string          `json:"status" validate:"omitempty,oneof=active inactive"`
	CommissionAmount *decimal.Decimal `json:"commission_amount"`
	PixKey           *string          `json:"pix_key" validate:"omitempty,max=140"`
}

// RecordClickRequest accepts the public referral code; the legacy
// ?ref=<user id> link form is also accepted in the same field.
type RecordClickRequest struct {
	ReferralCode string `json:"referral_code" validate:"required,max=64"`
	VisitorID    string `json:"visitor_identifier" validate:"required,max=64"`
}

// Response DTOs

type AffiliateResponse struct {
	UserID           uuid.UUID       `json:"user_id"`
	FullName         string          `json:"full_name"`
	ReferralCode     string          `json:"referral_code"`
	Status           string          `json:"status"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	PixKey           *string         `json:"pix_key,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type AffiliateListResponse struct {
	Affiliates []AffiliateResponse `json:"affiliates"`
	Total      int                 `json:"total"`
}

type ReferralStatsResponse struct {
	Clicks        int64 `json:"clicks"`
	Registrations int64 `json:"registrations"`
	Conversions   int64 `json:"conversions"`
}

type ReferredUserResponse struct {
	UserID             uuid.UUID `json:"user_id"`
	FullName           string    `json:"full_name"`
	SubscriptionStatus string    `json:"subscription_status"`
	ReferredAt         time.Time `json:"referred_at"`
}

type AffiliateDashboardResponse struct {
	Affiliate     AffiliateResponse         `json:"affiliate"`
	Stats         ReferralStatsResponse     `json:"stats"`
	Commissions   CommissionSummaryResponse `json:"commissions"`
	ReferredUsers []ReferredUserResponse    `json:"referred_users"`
}
