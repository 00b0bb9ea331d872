package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus represents the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusPending SubscriptionStatus = "pending"
	SubscriptionStatusActive  SubscriptionStatus = "active"
	SubscriptionStatusExpired SubscriptionStatus = "expired"
)

// Subscription plan targets
const (
	PlanTargetTitular    = "titular"
	PlanTargetDependente = "dependente"
)

// MemberProfile represents titular-specific profile data, including the
// member's own subscription state. The expiry timestamp is present iff
// the status is active; expireing preserves it for audit.
type MemberProfile struct {
	UserID                uuid.UUID          `gorm:"type:uuid;primaryKey" json:"user_id"`
	Document              string             `gorm:"type:varchar(20);uniqueIndex;not null" json:"document"`
	PhoneNumber           string             `gorm:"type:varchar(30)" json:"phone_number,omitempty"`
	SubscriptionStatus    SubscriptionStatus `gorm:"type:subscription_status;not null;default:'pending';index" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `gorm:"index" json:"subscription_expires_at,omitempty"`
	// EverActivated flags the first successful activation; commission
	// accrual fires only on the pending->active transition that sets it.
	EverActivated bool      `gorm:"not null;default:false" json:"ever_activated"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Dependents []Dependent `gorm:"foreignKey:MemberID" json:"dependents,omitempty"`
}

func (MemberProfile) TableName() string {
	return "member_profiles"
}

// IsSubscriptionActive reports whether the subscription is active at the
// given instant: status active and expiry strictly in the future.
func (m *MemberProfile) IsSubscriptionActive(now time.Time) bool {
	return m.SubscriptionStatus == SubscriptionStatusActive &&
		m.SubscriptionExpiresAt != nil &&
		m.SubscriptionExpiresAt.After(now)
}

// Activate moves the subscription to active with the given expiry and
// returns the resulting domain event. FirstActivation is true only on the
// very first activation of this member.
func (m *MemberProfile) Activate(expiresAt time.Time) SubscriptionActivated {
	first := !m.EverActivated
	m.SubscriptionStatus = SubscriptionStatusActive
	m.SubscriptionExpiresAt = &expiresAt
	m.EverActivated = true
	return SubscriptionActivated{
		UserID:          m.UserID,
		ExpiresAt:       expiresAt,
		FirstActivation: first,
	}
}

// SubscriptionActivated is the domain event emitted by every activation
// write path. The orchestrator consumes it to settle conversion
// side-effects for first activations.
type SubscriptionActivated struct {
	UserID          uuid.UUID
	ExpiresAt       time.Time
	FirstActivation bool
}
