package repository

import (
	"errors"
	"strings"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type couponRepository struct{}

func NewCouponRepository() domainRepo.CouponRepository {
	return &couponRepository{}
}

func (r *couponRepository) Create(db *gorm.DB, coupon *entity.Coupon) error {
	return db.Create(coupon).Error
}

func (r *couponRepository) FindByID(db *gorm.DB, id int) (*entity.Coupon, error) {
	var coupon entity.Coupon
	err := db.Where("id = ?", id).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindByCode(db *gorm.DB, code string) (*entity.Coupon, error) {
	var coupon entity.Coupon
	err := db.Where("upper(code) = ?", strings.ToUpper(code)).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindAll(db *gorm.DB) ([]entity.Coupon, error) {
	var coupons []entity.Coupon
	err := db.Order("created_at DESC").Find(&coupons).Error
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) Update(db *gorm.DB, coupon *entity.Coupon) error {
	return db.Save(coupon).Error
}

// Delete is a hard delete: coupons are not referenced after use, the
// paid amount alone is the audit record.
func (r *couponRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.Coupon{}, id).Error
}
