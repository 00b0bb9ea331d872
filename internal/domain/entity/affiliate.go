package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AffiliateStatus represents whether an affiliate can still attract clicks
type AffiliateStatus string

const (
	AffiliateStatusActive   AffiliateStatus = "active"
	AffiliateStatusInactive AffiliateStatus = "inactive"
)

// AffiliateProfile represents a user enrolled in the referral program.
// CommissionAmount is the default accrued per conversion; commissions
// snapshot it at accrual time, so changing it only affects the future.
type AffiliateProfile struct {
	UserID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	ReferralCode     string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"referral_code"`
	Status           AffiliateStatus `gorm:"type:affiliate_status;not null;default:'active';index" json:"status"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"commission_amount"`
	PixKey           *string         `gorm:"type:varchar(140)" json:"pix_key,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AffiliateProfile) TableName() string {
	return "affiliate_profiles"
}

// IsActive checks whether the affiliate still accepts attributions.
func (a *AffiliateProfile) IsActive() bool {
	return a.Status == AffiliateStatusActive
}
