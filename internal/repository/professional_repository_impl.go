package repository

import (
	"errors"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type professionalRepository struct{}

func NewProfessionalRepository() domainRepo.ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) Create(db *gorm.DB, professional *entity.ProfessionalProfile) error {
	return db.Create(professional).Error
}

func (r *professionalRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error) {
	var professional entity.ProfessionalProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) FindAll(db *gorm.DB) ([]entity.ProfessionalProfile, error) {
	var professionals []entity.ProfessionalProfile
	err := db.Preload("User").Order("created_at DESC").Find(&professionals).Error
	if err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) Update(db *gorm.DB, professional *entity.ProfessionalProfile) error {
	return db.Save(professional).Error
}
