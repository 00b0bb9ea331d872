package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is a discount code applied at subscription checkout. The
// authoritative value is FinalPrice; DiscountValue is stored redundantly
// for display. Codes match case-insensitively and are stored uppercased.
type Coupon struct {
	ID            int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Target        string          `gorm:"type:varchar(20);not null" json:"target"`
	FinalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"final_price"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	ValidFrom     *time.Time      `json:"valid_from,omitempty"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Enabled       bool            `gorm:"not null;default:true" json:"enabled"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// IsWithinWindow reports whether now falls inside the coupon's validity
// window. Absent bounds are open-ended.
func (c *Coupon) IsWithinWindow(now time.Time) bool {
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false
	}
	return true
}

// ResolvesFor reports whether the coupon applies to the given plan
// target at the given instant.
func (c *Coupon) ResolvesFor(target string, now time.Time) bool {
	return c.Enabled && c.Target == target && c.IsWithinWindow(now)
}
