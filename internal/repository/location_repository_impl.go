package repository

import (
	"errors"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type attendanceLocationRepository struct{}

func NewAttendanceLocationRepository() domainRepo.AttendanceLocationRepository {
	return &attendanceLocationRepository{}
}

func (r *attendanceLocationRepository) Create(db *gorm.DB, location *entity.AttendanceLocation) error {
	return db.Create(location).Error
}

func (r *attendanceLocationRepository) FindByID(db *gorm.DB, id int) (*entity.AttendanceLocation, error) {
	var location entity.AttendanceLocation
	err := db.Where("id = ?", id).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *attendanceLocationRepository) FindByProfessionalID(db *gorm.DB, professionalID uuid.UUID) ([]entity.AttendanceLocation, error) {
	var locations []entity.AttendanceLocation
	err := db.Where("professional_id = ?", professionalID).
		Order("is_default DESC, name ASC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *attendanceLocationRepository) Update(db *gorm.DB, location *entity.AttendanceLocation) error {
	return db.Save(location).Error
}

func (r *attendanceLocationRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.AttendanceLocation{}, id).Error
}

func (r *attendanceLocationRepository) ClearDefault(db *gorm.DB, professionalID uuid.UUID) error {
	return db.Model(&entity.AttendanceLocation{}).
		Where("professional_id = ? AND is_default = ?", professionalID, true).
		Update("is_default", false).Error
}
