package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionPayment records one reconciled payment confirmation. The
// unique payment reference makes webhook replays detectable: a duplicate
// insert means the confirmation was already processed.
type SubscriptionPayment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PaymentReference string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"payment_reference"`
	Target           string          `gorm:"type:varchar(20);not null" json:"target"`
	SubjectID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"subject_id"`
	AmountPaid       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount_paid"`
	CouponCode       *string         `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (SubscriptionPayment) TableName() string {
	return "subscription_payments"
}
