package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateCouponRequest struct {
	Code        string          `json:"code" validate:"required,min=3,max=50"`
	Target      string          `json:"target" validate:"required,oneof=titular dependente"`
	FinalPrice  decimal.Decimal `json:"final_price" validate:"required"`
	ValidFrom   *time.Time      `json:"valid_from"`
	ValidUntil  *time.Time      `json:"valid_until"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Enabled     *bool           `json:"enabled"`
}

type UpdateCouponRequest struct {
	FinalPrice  *decimal.Decimal `json:"final_price"`
	ValidFrom   *time.Time       `json:"valid_from"`
	ValidUntil  *time.Time       `json:"valid_until"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Enabled     *bool            `json:"enabled"`
}

type ResolveCouponRequest struct {
	Code   string `json:"code" validate:"required"`
	Target string `json:"target" validate:"required,oneof=titular dependente"`
}

// Response DTOs

type CouponResponse struct {
	ID            int             `json:"id"`
	Code          string          `json:"code"`
	Target        string          `json:"target"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	ValidFrom     *time.Time      `json:"valid_from,omitempty"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
	Description   string          `json:"description,omitempty"`
	Enabled       bool            `json:"enabled"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CouponListResponse struct {
	Coupons []CouponResponse `json:"coupons"`
	Total   int              `json:"total"`
}

type ResolveCouponResponse struct {
	FinalPrice    decimal.Decimal `json:"final_price"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}
