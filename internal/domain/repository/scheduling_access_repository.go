package repository

import (
	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchedulingAccessRepository interface {
	// Upsert inserts or replaces the grant for its professional.
	Upsert(db *gorm.DB, grant *entity.SchedulingAccessGrant) error
	FindByProfessionalID(db *gorm.DB, professionalID uuid.UUID) (*entity.SchedulingAccessGrant, error)
	Update(db *gorm.DB, grant *entity.SchedulingAccessGrant) error
}
