package repository

import (
	"errors"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type schedulingAccessRepository struct{}

func NewSchedulingAccessRepository() domainRepo.SchedulingAccessRepository {
	return &schedulingAccessRepository{}
}

func (r *schedulingAccessRepository) Upsert(db *gorm.DB, grant *entity.SchedulingAccessGrant) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "professional_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"has_access", "expires_at", "granted_by", "granted_at", "reason", "updated_at",
		}),
	}).Create(grant).Error
}

func (r *schedulingAccessRepository) FindByProfessionalID(db *gorm.DB, professionalID uuid.UUID) (*entity.SchedulingAccessGrant, error) {
	var grant entity.SchedulingAccessGrant
	err := db.Where("professional_id = ?", professionalID).First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

func (r *schedulingAccessRepository) Update(db *gorm.DB, grant *entity.SchedulingAccessGrant) error {
	return db.Save(grant).Error
}
