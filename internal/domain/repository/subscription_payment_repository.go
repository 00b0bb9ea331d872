package repository

import (
	"convenio-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type SubscriptionPaymentRepository interface {
	Create(db *gorm.DB, payment *entity.SubscriptionPayment) error
	FindByReference(db *gorm.DB, paymentReference string) (*entity.SubscriptionPayment, error)
}
