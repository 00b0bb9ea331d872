package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReferralStage represents the funnel stage of a referral event
type ReferralStage string

const (
	ReferralStageClick        ReferralStage = "click"
	ReferralStageRegistration ReferralStage = "registration"
	ReferralStageConversion   ReferralStage = "conversion"
)

// ReferralEvent is one step of the referral funnel. Clicks may repeat;
// a visitor gets at most one registration row and a user at most one
// conversion row (partial unique indexes in the schema).
type ReferralEvent struct {
	ID           int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	AffiliateID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"affiliate_id"`
	VisitorID    string        `gorm:"type:varchar(64);not null;index" json:"visitor_id"`
	Stage        ReferralStage `gorm:"type:referral_stage;not null;index" json:"stage"`
	LinkedUserID *uuid.UUID    `gorm:"type:uuid;index" json:"linked_user_id,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Affiliate AffiliateProfile `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
}

func (ReferralEvent) TableName() string {
	return "referral_events"
}

// ReferredUser is the write-once per-user affiliate attribution. Once a
// user is attributed, later clicks or registrations never change it.
type ReferredUser struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	AffiliateID uuid.UUID `gorm:"type:uuid;not null;index" json:"affiliate_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User      User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Affiliate AffiliateProfile `gorm:"foreignKey:AffiliateID" json:"affiliate,omitempty"`
}

func (ReferredUser) TableName() string {
	return "referred_users"
}
