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

type dependentRepository struct{}

func NewDependentRepository() domainRepo.DependentRepository {
	return &dependentRepository{}
}

func (r *dependentRepository) Create(db *gorm.DB, dependent *entity.Dependent) error {
	return db.Create(dependent).Error
}

func (r *dependentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Dependent, error) {
	var dependent entity.Dependent
	err := db.Where("id = ?", id).First(&dependent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dependent, nil
}

func (r *dependentRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Dependent, error) {
	var dependent entity.Dependent
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&dependent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dependent, nil
}

func (r *dependentRepository) FindByMemberID(db *gorm.DB, memberID uuid.UUID) ([]entity.Dependent, error) {
	var dependents []entity.Dependent
	err := db.Where("member_id = ?", memberID).Order("created_at ASC").Find(&dependents).Error
	if err != nil {
		return nil, err
	}
	return dependents, nil
}

func (r *dependentRepository) CountByMemberID(db *gorm.DB, memberID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Dependent{}).Where("member_id = ?", memberID).Count(&count).Error
	return count, err
}

func (r *dependentRepository) Update(db *gorm.DB, dependent *entity.Dependent) error {
	return db.Save(dependent).Error
}

func (r *dependentRepository) ExpireDue(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&entity.Dependent{}).
		Where("subscription_status = ? AND subscription_expires_at < ?", entity.SubscriptionStatusActive, now).
		Update("subscription_status", entity.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}
