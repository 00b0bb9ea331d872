package repository

import (
	"convenio-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(db *gorm.DB, coupon *entity.Coupon) error
	FindByID(db *gorm.DB, id int) (*entity.Coupon, error)
	// FindByCode matches the code case-insensitively.
	FindByCode(db *gorm.DB, code string) (*entity.Coupon, error)
	FindAll(db *gorm.DB) ([]entity.Coupon, error)
	Update(db *gorm.DB, coupon *entity.Coupon) error
	Delete(db *gorm.DB, id int) error
}
