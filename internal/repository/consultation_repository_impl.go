package repository

import (
	"errors"
	"time"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) Create(db *gorm.DB, consultation *entity.Consultation) error {
	return db.Create(consultation).Error
}

func (r *consultationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.Preload("Professional.User").Preload("Service").Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindByPeriod(db *gorm.DB, start, end time.Time, professionalID *uuid.UUID) ([]entity.Consultation, error) {
	query := db.Preload("Professional.User").Preload("Service").
		Where("date >= ? AND date < ?", start, end)
	if professionalID != nil {
		query = query.Where("professional_id = ?", *professionalID)
	}

	var consultations []entity.Consultation
	err := query.Order("date ASC").Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindForRevenue(db *gorm.DB, start, end time.Time) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Preload("Professional.User").Preload("Service").
		Where("date >= ? AND date < ?", start, end).
		Where("status IN ?", []entity.ConsultationStatus{
			entity.ConsultationStatusConfirmed,
			entity.ConsultationStatusCompleted,
		}).
		Order("date ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) Update(db *gorm.DB, consultation *entity.Consultation) error {
	return db.Save(consultation).Error
}

func (r *consultationRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Consultation{}, "id = ?", id).Error
}
