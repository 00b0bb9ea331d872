package repository

import (
	"errors"
	"time"

	"convenio-backend/internal/domain/entity"
	domainRepo "convenio-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type commissionRepository struct{}

func NewCommissionRepository() domainRepo.CommissionRepository {
	return &commissionRepository{}
}

func (r *commissionRepository) Create(db *gorm.DB, commission *entity.Commission) error {
	return db.Create(commission).Error
}

func (r *commissionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Commission, error) {
	var commission entity.Commission
	err := db.Preload("Affiliate").Preload("SourceUser").Where("id = ?", id).First(&commission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &commission, nil
}

func (r *commissionRepository) FindByAffiliateAndSource(db *gorm.DB, affiliateID, sourceUserID uuid.UUID) (*entity.Commission, error) {
	var commission entity.Commission
	err := db.Where("affiliate_id = ? AND source_user_id = ?", affiliateID, sourceUserID).First(&commission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &commission, nil
}

func (r *commissionRepository) FindByAffiliate(db *gorm.DB, affiliateID uuid.UUID, status *entity.CommissionStatus) ([]entity.Commission, error) {
	query := db.Preload("SourceUser").Where("affiliate_id = ?", affiliateID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var commissions []entity.Commission
	err := query.Order("created_at DESC").Find(&commissions).Error
	if err != nil {
		return nil, err
	}
	return commissions, nil
}

// FindByPeriod attributes paid commissions to the month of paid_at and
// pending ones to the month of created_at.
func (r *commissionRepository) FindByPeriod(db *gorm.DB, start, end time.Time, status *entity.CommissionStatus) ([]entity.Commission, error) {
	query := db.Preload("Affiliate").Preload("SourceUser").
		Where(
			db.Where("status = ? AND paid_at >= ? AND paid_at < ?", entity.CommissionStatusPaid, start, end).
				Or("status = ? AND created_at >= ? AND created_at < ?", entity.CommissionStatusPending, start, end),
		)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var commissions []entity.Commission
	err := query.Order("created_at DESC").Find(&commissions).Error
	if err != nil {
		return nil, err
	}
	return commissions, nil
}

func (r *commissionRepository) Update(db *gorm.DB, commission *entity.Commission) error {
	return db.Save(commission).Error
}

// MarkPaid atomically pays a commission ONLY if it's still pending.
// Returns affected rows: 1 = success, 0 = already paid (prevents
// double-pay race). Amount, affiliate and source stay untouched.
func (r *commissionRepository) MarkPaid(db *gorm.DB, id uuid.UUID, paidBy uuid.UUID, paidMethod string, receiptReference *string, paidAt time.Time) (int64, error) {
	result := db.Model(&entity.Commission{}).
		Where("id = ? AND status = ?", id, entity.CommissionStatusPending).
		Updates(map[string]interface{}{
			"status":            entity.CommissionStatusPaid,
			"paid_at":           paidAt,
			"paid_by":           paidBy,
			"paid_method":       paidMethod,
			"receipt_reference": receiptReference,
		})
	return result.RowsAffected, result.Error
}

func (r *commissionRepository) SummarizeByAffiliate(db *gorm.DB, affiliateID uuid.UUID) (*domainRepo.CommissionSummary, error) {
	var summary domainRepo.CommissionSummary
	err := db.Model(&entity.Commission{}).
		Select(`
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) as pending_total,
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) as paid_total,
			COUNT(*) as count`).
		Where("affiliate_id = ?", affiliateID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
