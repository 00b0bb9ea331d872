package repository

import (
	"errors"
	"time"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type referralRepository struct{}

func NewReferralRepository() domainRepo.ReferralRepository {
	return &referralRepository{}
}

func (r *referralRepository) CreateEvent(db *gorm.DB, event *entity.ReferralEvent) error {
	return db.Create(event).Error
}

// FindFirstClickByVisitor returns the earliest click row so attribution
// is stable when clicks for different affiliates exist for one visitor.
func (r *referralRepository) FindFirstClickByVisitor(db *gorm.DB, visitorID string) (*entity.ReferralEvent, error) {
	var event entity.ReferralEvent
	err := db.Where("visitor_id = ? AND stage = ?", visitorID, entity.ReferralStageClick).
		Order("created_at ASC, id ASC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *referralRepository) HasRegistrationForVisitor(db *gorm.DB, visitorID string) (bool, error) {
	var count int64
	err := db.Model(&entity.ReferralEvent{}).
		Where("visitor_id = ? AND stage = ?", visitorID, entity.ReferralStageRegistration).
		Count(&count).Error
	return count > 0, err
}

func (r *referralRepository) HasConversionForUser(db *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&entity.ReferralEvent{}).
		Where("linked_user_id = ? AND stage = ?", userID, entity.ReferralStageConversion).
		Count(&count).Error
	return count > 0, err
}

func (r *referralRepository) CountByAffiliateAndStage(db *gorm.DB, affiliateID uuid.UUID, stage entity.ReferralStage, start, end time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.ReferralEvent{}).
		Where("affiliate_id = ? AND stage = ? AND created_at >= ? AND created_at < ?", affiliateID, stage, start, end).
		Count(&count).Error
	return count, err
}

func (r *referralRepository) CreateReferredUser(db *gorm.DB, referred *entity.ReferredUser) error {
	return db.Create(referred).Error
}

func (r *referralRepository) FindReferredUser(db *gorm.DB, userID uuid.UUID) (*entity.ReferredUser, error) {
	var referred entity.ReferredUser
	err := db.Where("user_id = ?", userID).First(&referred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &referred, nil
}

func (r *referralRepository) ListReferredUsers(db *gorm.DB, affiliateID uuid.UUID) ([]entity.ReferredUser, error) {
	var referred []entity.ReferredUser
	err := db.Preload("User.MemberProfile").
		Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").
		Find(&referred).Error
	if err != nil {
		return nil, err
	}
	return referred, nil
}
