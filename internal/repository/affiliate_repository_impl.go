package repository

import (
	"errors"
	"strings"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type affiliateRepository struct{}

func NewAffiliateRepository() domainRepo.AffiliateRepository {
	return &affiliateRepository{}
}

func (r *affiliateRepository) Create(db *gorm.DB, affiliate *entity.AffiliateProfile) error {
	return db.Create(affiliate).Error
}

func (r *affiliateRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.AffiliateProfile, error) {
	var affiliate entity.AffiliateProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&affiliate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &affiliate, nil
}

func (r *affiliateRepository) FindByReferralCode(db *gorm.DB, code string) (*entity.AffiliateProfile, error) {
	var affiliate entity.AffiliateProfile
	err := db.Where("upper(referral_code) = ?", strings.ToUpper(code)).First(&affiliate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &affiliate, nil
}

func (r *affiliateRepository) FindAll(db *gorm.DB) ([]entity.AffiliateProfile, error) {
	var affiliates []entity.AffiliateProfile
	err := db.Preload("User").Order("created_at DESC").Find(&affiliates).Error
	if err != nil {
		return nil, err
	}
	return affiliates, nil
}

func (r *affiliateRepository) Update(db *gorm.DB, affiliate *entity.AffiliateProfile) error {
	return db.Save(affiliate).Error
}
