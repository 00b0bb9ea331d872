package repository

import (
	"errors"
	"time"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type memberRepository struct{}

func NewMemberRepository() domainRepo.MemberRepository {
	return &memberRepository{}
}

func (r *memberRepository) Create(db *gorm.DB, member *entity.MemberProfile) error {
	return db.Create(member).Error
}

func (r *memberRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.MemberProfile, error) {
	var member entity.MemberProfile
	err := db.Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByUserIDForUpdate(db *gorm.DB, userID uuid.UUID) (*entity.MemberProfile, error) {
	var member entity.MemberProfile
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindAll(db *gorm.DB) ([]entity.MemberProfile, error) {
	var members []entity.MemberProfile
	err := db.Preload("User").Order("created_at DESC").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *memberRepository) Update(db *gorm.DB, member *entity.MemberProfile) error {
	return db.Save(member).Error
}

// ExpireDue is a conditional update guarded by the current state, so
// concurrent sweeps never double-transition a member. The expiry value
// is preserved for audit.
func (r *memberRepository) ExpireDue(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&entity.MemberProfile{}).
		Where("subscription_status = ? AND subscription_expires_at < ?", entity.SubscriptionStatusActive, now).
		Update("subscription_status", entity.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}
