package repository

import (
	"time"

	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AffiliateRepository interface {
	Create(db *gorm.DB, affiliate *entity.AffiliateProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.AffiliateProfile, error)
	// FindByReferralCode matches the code case-insensitively.
	FindByReferralCode(db *gorm.DB, code string) (*entity.AffiliateProfile, error)
	FindAll(db *gorm.DB) ([]entity.AffiliateProfile, error)
	Update(db *gorm.DB, affiliate *entity.AffiliateProfile) error
}

type ReferralRepository interface {
	CreateEvent(db *gorm.DB, event *entity.ReferralEvent) error
	// FindFirstClickByVisitor returns the earliest click for the visitor,
	// which wins attribution when clicks for different affiliates exist.
	FindFirstClickByVisitor(db *gorm.DB, visitorID string) (*entity.ReferralEvent, error)
	HasRegistrationForVisitor(db *gorm.DB, visitorID string) (bool, error)
	HasConversionForUser(db *gorm.DB, userID uuid.UUID) (bool, error)
	CountByAffiliateAndStage(db *gorm.DB, affiliateID uuid.UUID, stage entity.ReferralStage, start, end time.Time) (int64, error)
	CreateReferredUser(db *gorm.DB, referred *entity.ReferredUser) error
	FindReferredUser(db *gorm.DB, userID uuid.UUID) (*entity.ReferredUser, error)
	ListReferredUsers(db *gorm.DB, affiliateID uuid.UUID) ([]entity.ReferredUser, error)
}

type CommissionRepository interface {
	Create(db *gorm.DB, commission *entity.Commission) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Commission, error)
	FindByAffiliateAndSource(db *gorm.DB, affiliateID, sourceUserID uuid.UUID) (*entity.Commission, error)
	FindByAffiliate(db *gorm.DB, affiliateID uuid.UUID, status *entity.CommissionStatus) ([]entity.Commission, error)
	// FindByPeriod applies the monthly attribution rule: paid rows match
	// on paid_at, pending rows on created_at.
	FindByPeriod(db *gorm.DB, start, end time.Time, status *entity.CommissionStatus) ([]entity.Commission, error)
	Update(db *gorm.DB, commission *entity.Commission) error
	// MarkPaid atomically transitions pending -> paid. Returns affected
	// rows: 1 = success, 0 = already paid (prevents double-pay race).
	MarkPaid(db *gorm.DB, id uuid.UUID, paidBy uuid.UUID, paidMethod string, receiptReference *string, paidAt time.Time) (int64, error)
	SummarizeByAffiliate(db *gorm.DB, affiliateID uuid.UUID) (*CommissionSummary, error)
}

// CommissionSummary aggregates an affiliate's ledger.
type CommissionSummary struct {
	PendingTotal decimal.Decimal `gorm:"column:pending_total"`
	PaidTotal    decimal.Decimal `gorm:"column:paid_total"`
	Count        int64           `gorm:"column:count"`
}
