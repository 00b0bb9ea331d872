package repository

import (
	"time"

	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(db *gorm.DB, consultation *entity.Consultation) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error)
	// FindByPeriod lists consultations with date in [start, end),
	// optionally scoped to one professional.
	FindByPeriod(db *gorm.DB, start, end time.Time, professionalID *uuid.UUID) ([]entity.Consultation, error)
	// FindForRevenue lists confirmed/completed consultations in [start, end)
	// with professional and service preloaded for report building.
	FindForRevenue(db *gorm.DB, start, end time.Time) ([]entity.Consultation, error)
	Update(db *gorm.DB, consultation *entity.Consultation) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
