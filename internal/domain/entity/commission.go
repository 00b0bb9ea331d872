package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrCommissionAlreadyPaid is returned when a paid commission is paid again.
var ErrCommissionAlreadyPaid = errors.New("commission is already paid")

// CommissionStatus represents the payout state of a commission
type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
)

// Commission is one conversion's accrued payout. Amount snapshots the
// affiliate's commission at accrual time. The pending->paid transition
// happens at most once; paid rows are immutable.
type Commission struct {
	ID                       uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AffiliateID              uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_commissions_affiliate_source" json:"affiliate_id"`
	SourceUserID             uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex;uniqueIndex:idx_commissions_affiliate_source" json:"source_user_id"`
	Amount                   decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status                   CommissionStatus `gorm:"type:commission_status;not null;default:'pending';index" json:"status"`
	CreatedAt                time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
	PaidAt                   *time.Time       `gorm:"index" json:"paid_at,omitempty"`
	PaidBy                   *uuid.UUID       `gorm:"type:uuid" json:"paid_by,omitempty"`
	PaidMethod               *string          `gorm:"type:varchar(50)" json:"paid_method,omitempty"`
	ReceiptReference         *string          `gorm:"type:text" json:"receipt_reference,omitempty"`
	ExternalPaymentReference *string          `gorm:"type:varchar(100)" json:"external_payment_reference,omitempty"`

	// Relationships
	Affiliate  AffiliateProfile `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
	SourceUser User             `gorm:"foreignKey:SourceUserID" json:"source_user,omitempty"`
}

func (Commission) TableName() string {
	return "commissions"
}

// IsPaid checks if the commission has been paid out
func (c *Commission) IsPaid() bool {
	return c.Status == CommissionStatusPaid
}

// MarkPaid transitions pending -> paid, stamping the payment metadata.
// Fails if already paid.
func (c *Commission) MarkPaid(paidBy uuid.UUID, paidMethod string, receiptReference *string, now time.Time) error {
	if c.IsPaid() {
		return ErrCommissionAlreadyPaid
	}
	c.Status = CommissionStatusPaid
	c.PaidAt = &now
	c.PaidBy = &paidBy
	c.PaidMethod = &paidMethod
	c.ReceiptReference = receiptReference
	return nil
}

// BelongsToPeriod applies the monthly attribution rule: paid commissions
// belong to the period of paid_at, pending ones to the period of created_at.
func (c *Commission) BelongsToPeriod(start, end time.Time) bool {
	ref := c.CreatedAt
	if c.IsPaid() && c.PaidAt != nil {
		ref = *c.PaidAt
	}
	return !ref.Before(start) && ref.Before(end)
}
