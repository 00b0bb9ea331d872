package repository

import (
	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	AddRole(db *gorm.DB, user *entity.User, role *entity.Role) error
}

type RoleRepository interface {
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
}
