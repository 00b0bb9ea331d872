package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type PayCommissionRequest struct {
	PaidMethod               string  `json:"paid_method" validate:"required,max=50"`
	ReceiptReference         *string `json:"receipt_reference" validate:"omitempty,max=500"`
	ExternalPaymentReference *string `json:"external_payment_reference" validate:"omitempty,max=100"`
}

// Response DTOs

type CommissionResponse struct {
	ID               uuid.UUID       `json:"id"`
	AffiliateID      uuid.UUID       `json:"affiliate_id"`
	SourceUserID     uuid.UUID       `json:"source_user_id"`
	SourceUserName   string          `json:"source_user_name,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	PaidBy           *uuid.UUID      `json:"paid_by,omitempty"`
	PaidMethod       *string         `json:"paid_method,omitempty"`
	ReceiptReference *string         `json:"receipt_reference,omitempty"`
}

type CommissionListResponse struct {
	Commissions []CommissionResponse `json:"commissions"`
	Total       int                  `json:"total"`
}

type CommissionSummaryResponse struct {
	PendingTotal decimal.Decimal `json:"pending_total"`
	PaidTotal    decimal.Decimal `json:"paid_total"`
	Count        int64           `json:"count"`
}
