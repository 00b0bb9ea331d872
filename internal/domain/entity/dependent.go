package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaxDependentsPerMember caps how many dependents a titular may own.
const MaxDependentsPerMember = 10

// Dependent represents a secondary subscription owned by a titular.
// Its subscription state is independent of the owner's.
type Dependent struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MemberID              uuid.UUID          `gorm:"type:uuid;not null;index" json:"member_id"`
	FullName              string             `gorm:"type:varchar(255);not null" json:"full_name"`
	Document              string             `gorm:"type:varchar(20);not null" json:"document"`
	SubscriptionStatus    SubscriptionStatus `gorm:"type:subscription_status;not null;default:'pending';index" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `gorm:"index" json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Member MemberProfile `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Dependent) TableName() string {
	return "dependents"
}

// IsSubscriptionActive reports whether the dependent's subscription is
// active at the given instant.
func (d *Dependent) IsSubscriptionActive(now time.Time) bool {
	return d.SubscriptionStatus == SubscriptionStatusActive &&
		d.SubscriptionExpiresAt != nil &&
		d.SubscriptionExpiresAt.After(now)
}

// Activate moves the dependent's subscription to active with the given expiry.
func (d *Dependent) Activate(expiresAt time.Time) {
	d.SubscriptionStatus = SubscriptionStatusActive
	d.SubscriptionExpiresAt = &expiresAt
}
