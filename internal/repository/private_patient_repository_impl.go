package repository

import (
	"errors"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type privatePatientRepository struct{}

func NewPrivatePatientRepository() domainRepo.PrivatePatientRepository {
	return &privatePatientRepository{}
}

func (r *privatePatientRepository) Create(db *gorm.DB, patient *entity.PrivatePatient) error {
	return db.Create(patient).Error
}

func (r *privatePatientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrivatePatient, error) {
	var patient entity.PrivatePatient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *privatePatientRepository) FindByProfessionalID(db *gorm.DB, professionalID uuid.UUID) ([]entity.PrivatePatient, error) {
	var patients []entity.PrivatePatient
	err := db.Where("professional_id = ?", professionalID).Order("full_name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *privatePatientRepository) Update(db *gorm.DB, patient *entity.PrivatePatient) error {
	return db.Save(patient).Error
}

func (r *privatePatientRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.PrivatePatient{}, "id = ?", id).Error
}
