package entity

import (
	"time"

	"github.com/google/uuid"
)

// SchedulingAccessState is the derived state of a grant at an instant
type SchedulingAccessState string

const (
	SchedulingAccessAbsent  SchedulingAccessState = "absent"
	SchedulingAccessActive  SchedulingAccessState = "active"
	SchedulingAccessExpired SchedulingAccessState = "expired"
)

// SchedulingAccessGrant is a per-professional expirable capability to
// use the scheduling sub-application. It is independent of subscription
// state. Revoking clears has_access but keeps the history fields.
type SchedulingAccessGrant struct {
	ProfessionalID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"professional_id"`
	HasAccess      bool       `gorm:"not null;default:false" json:"has_access"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	GrantedBy      *uuid.UUID `gorm:"type:uuid" json:"granted_by,omitempty"`
	GrantedAt      *time.Time `json:"granted_at,omitempty"`
	Reason         string     `gorm:"type:text" json:"reason,omitempty"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Professional ProfessionalProfile `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
}

func (SchedulingAccessGrant) TableName() string {
	return "scheduling_access_grants"
}

// StateAt derives the access state: absent when has_access is false,
// expired when the expiry has passed, active otherwise.
func (g *SchedulingAccessGrant) StateAt(now time.Time) SchedulingAccessState {
	if g == nil || !g.HasAccess {
		return SchedulingAccessAbsent
	}
	if g.ExpiresAt != nil && !g.ExpiresAt.After(now) {
		return SchedulingAccessExpired
	}
	return SchedulingAccessActive
}
