package repository

import (
	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	Create(db *gorm.DB, professional *entity.ProfessionalProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ProfessionalProfile, error)
	FindAll(db *gorm.DB) ([]entity.ProfessionalProfile, error)
	Update(db *gorm.DB, professional *entity.ProfessionalProfile) error
}

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id int) (*entity.Service, error)
	FindAll(db *gorm.DB) ([]entity.Service, error)
	Update(db *gorm.DB, service *entity.Service) error
	Delete(db *gorm.DB, id int) error
}

type AttendanceLocationRepository interface {
	Create(db *gorm.DB, location *entity.AttendanceLocation) error
	FindByID(db *gorm.DB, id int) (*entity.AttendanceLocation, error)
	FindByProfessionalID(db *gorm.DB, professionalID uuid.UUID) ([]entity.AttendanceLocation, error)
	Update(db *gorm.DB, location *entity.AttendanceLocation) error
	Delete(db *gorm.DB, id int) error
	// ClearDefault unsets is_default on every location of the professional.
	ClearDefault(db *gorm.DB, professionalID uuid.UUID) error
}

type PrivatePatientRepository interface {
	Create(db *gorm.DB, patient *entity.PrivatePatient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrivatePatient, error)
	FindByProfessionalID(db *gorm.DB, professionalID uuid.UUID) ([]entity.PrivatePatient, error)
	Update(db *gorm.DB, patient *entity.PrivatePatient) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
