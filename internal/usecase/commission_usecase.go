package usecase

import (
	"context"
	"errors"
	"time"

	"convenio-backend/internal/converter"
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
	"convenio-backend/internal/domain/repository"
	"convenio-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCommissionNotFound = errors.New("commission not found")
	// ErrCommissionAlreadyPaid re-exports the entity sentinel so
	// handlers map every paid-twice path through one error.
	ErrCommissionAlreadyPaid = entity.ErrCommissionAlreadyPaid
)

type CommissionUsecase interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.CommissionResponse, error)
	ListByAffiliate(ctx context.Context, affiliateID uuid.UUID, status *string) (*dto.CommissionListResponse, error)
	// ListByPeriod lists commissions attributed to the month of ref:
	// paid rows by paid_at, pending rows by created_at.
	ListByPeriod(ctx context.Context, ref time.Time, status *string) (*dto.CommissionListResponse, error)
	// Pay transitions one commission pending -> paid. At most one caller
	// wins; the rest observe ErrCommissionAlreadyPaid.
	Pay(ctx context.Context, id uuid.UUID, req *dto.PayCommissionRequest, actorID uuid.UUID) (*dto.CommissionResponse, error)
	Summary(ctx context.Context, affiliateID uuid.UUID) (*dto.CommissionSummaryResponse, error)
}

type commissionUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	commissionRepo repository.CommissionRepository
	auditService   service.AuditService
}

func NewCommissionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	commissionRepo repository.CommissionRepository,
	auditService service.AuditService,
) CommissionUsecase {
	return &commissionUsecase{
		db:             db,
		log:            log,
		commissionRepo: commissionRepo,
		auditService:   auditService,
	}
}

func (u *commissionUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.CommissionResponse, error) {
	commission, err := u.commissionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find commission %s: %+v", id, err)
		return nil, err
	}
	if commission == nil {
		return nil, ErrCommissionNotFound
	}
	return converter.CommissionToResponse(commission), nil
}

func (u *commissionUsecase) ListByAffiliate(ctx context.Context, affiliateID uuid.UUID, status *string) (*dto.CommissionListResponse, error) {
	commissions, err := u.commissionRepo.FindByAffiliate(u.db.WithContext(ctx), affiliateID, statusFilter(status))
	if err != nil {
		u.log.Warnf("Failed to list commissions for affiliate %s: %+v", affiliateID, err)
		return nil, err
	}
	return &dto.CommissionListResponse{
		Commissions: converter.CommissionsToResponses(commissions),
		Total:       len(commissions),
	}, nil
}

func (u *commissionUsecase) ListByPeriod(ctx context.Context, ref time.Time, status *string) (*dto.CommissionListResponse, error) {
	start, end := monthWindow(ref)

	commissions, err := u.commissionRepo.FindByPeriod(u.db.WithContext(ctx), start, end, statusFilter(status))
	if err != nil {
		u.log.Warnf("Failed to list commissions for period %s: %+v", start.Format("2006-01"), err)
		return nil, err
	}
	return &dto.CommissionListResponse{
		Commissions: converter.CommissionsToResponses(commissions),
		Total:       len(commissions),
	}, nil
}

func (u *commissionUsecase) Pay(ctx context.Context, id uuid.UUID, req *dto.PayCommissionRequest, actorID uuid.UUID) (*dto.CommissionResponse, error) {
	now := nowFunc()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	commission, err := u.commissionRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find commission %s: %+v", id, err)
		return nil, err
	}
	if commission == nil {
		return nil, ErrCommissionNotFound
	}

	// Conditional update; zero rows means another payout won the race
	// or the row was already paid.
	affected, err := u.commissionRepo.MarkPaid(tx, id, actorID, req.PaidMethod, req.ReceiptReference, now)
	if err != nil {
		u.log.Warnf("Failed to pay commission %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrCommissionAlreadyPaid
	}

	if req.ExternalPaymentReference != nil {
		commission.ExternalPaymentReference = req.ExternalPaymentReference
		if err := u.commissionRepo.Update(tx, commission); err != nil {
			u.log.Warnf("Failed to stamp external reference on %s: %+v", id, err)
			return nil, err
		}
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "commission.pay", "commission", id.String(),
		map[string]interface{}{"status": entity.CommissionStatusPending},
		map[string]interface{}{"status": entity.CommissionStatusPaid, "paid_method": req.PaidMethod})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	commission, err = u.commissionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Commission paid: id=%s, by=%s, method=%s", id, actorID, req.PaidMethod)
	return converter.CommissionToResponse(commission), nil
}

func (u *commissionUsecase) Summary(ctx context.Context, affiliateID uuid.UUID) (*dto.CommissionSummaryResponse, error) {
	summary, err := u.commissionRepo.SummarizeByAffiliate(u.db.WithContext(ctx), affiliateID)
	if err != nil {
		u.log.Warnf("Failed to summarize commissions for %s: %+v", affiliateID, err)
		return nil, err
	}
	return &dto.CommissionSummaryResponse{
		PendingTotal: summary.PendingTotal,
		PaidTotal:    summary.PaidTotal,
		Count:        summary.Count,
	}, nil
}

func statusFilter(status *string) *entity.CommissionStatus {
	if status == nil || *status == "" {
		return nil
	}
	s := entity.CommissionStatus(*status)
	return &s
}
