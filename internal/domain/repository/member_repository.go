package repository

import (
	"time"

	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(db *gorm.DB, member *entity.MemberProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.MemberProfile, error)
	// FindByUserIDForUpdate locks the member row for the duration of the
	// surrounding transaction.
	FindByUserIDForUpdate(db *gorm.DB, userID uuid.UUID) (*entity.MemberProfile, error)
	FindAll(db *gorm.DB) ([]entity.MemberProfile, error)
	Update(db *gorm.DB, member *entity.MemberProfile) error
	// ExpireDue transitions every active member whose expiry is strictly
	// before now to expired, preserving the expiry value. Returns the
	// number of rows transitioned.
	ExpireDue(db *gorm.DB, now time.Time) (int64, error)
}

type DependentRepository interface {
	Create(db *gorm.DB, dependent *entity.Dependent) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Dependent, error)
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Dependent, error)
	FindByMemberID(db *gorm.DB, memberID uuid.UUID) ([]entity.Dependent, error)
	CountByMemberID(db *gorm.DB, memberID uuid.UUID) (int64, error)
	Update(db *gorm.DB, dependent *entity.Dependent) error
	ExpireDue(db *gorm.DB, now time.Time) (int64, error)
}
