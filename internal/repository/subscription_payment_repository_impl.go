package repository

import (
	"errors"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type subscriptionPaymentRepository struct{}

func NewSubscriptionPaymentRepository() domainRepo.SubscriptionPaymentRepository {
	return &subscriptionPaymentRepository{}
}

func (r *subscriptionPaymentRepository) Create(db *gorm.DB, payment *entity.SubscriptionPayment) error {
	return db.Create(payment).Error
}

func (r *subscriptionPaymentRepository) FindByReference(db *gorm.DB, paymentReference string) (*entity.SubscriptionPayment, error) {
	var payment entity.SubscriptionPayment
	err := db.Where("payment_reference = ?", paymentReference).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}
