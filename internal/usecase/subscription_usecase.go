package usecase

import (
	"context"
	"errors"
	"time"

	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/repository"
	"convenio-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrExpiryInPast   = errors.New("expiry date must be in the future")
)

type SubscriptionUsecase interface {
	Activate(ctx context.Context, req *dto.ActivateSubscriptionRequest, actorID uuid.UUID) (*dto.SubscriptionResponse, error)
	Get(ctx context.Context, memberID uuid.UUID) (*dto.SubscriptionResponse, error)
	// ExpireSweep transitions every overdue active subscription (members
	// and dependents) to expired. Idempotent and safe to run from
	// several instances.
	ExpireSweep(ctx context.Context, now time.Time) (int64, error)
}

type subscriptionUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	memberRepo    repository.MemberRepository
	dependentRepo repository.DependentRepository
	settler       *ConversionSettler
	auditService  service.AuditService
}

func NewSubscriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	memberRepo repository.MemberRepository,
	dependentRepo repository.DependentRepository,
	settler *ConversionSettler,
	auditService service.AuditService,
) SubscriptionUsecase {
	return &subscriptionUsecase{
		db:            db,
		log:           log,
		memberRepo:    memberRepo,
		dependentRepo: dependentRepo,
		settler:       settler,
		auditService:  auditService,
	}
}

// Activate is the admin manual path. It runs the same orchestrated
// sequence as a payment confirmation: a first activation of an
// attributed member accrues the commission in the same transaction.
func (u *subscriptionUsecase) Activate(ctx context.Context, req *dto.ActivateSubscriptionRequest, actorID uuid.UUID) (*dto.SubscriptionResponse, error) {
	now := nowFunc()
	if !req.ExpiresAt.After(now) {
		return nil, ErrExpiryInPast
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	member, err := u.memberRepo.FindByUserIDForUpdate(tx, req.MemberID)
	if err != nil {
		u.log.Warnf("Failed to find member %s: %+v", req.MemberID, err)
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	// Idempotent under identical inputs.
	if member.IsSubscriptionActive(now) && member.SubscriptionExpiresAt.Equal(req.ExpiresAt) {
		return &dto.SubscriptionResponse{
			MemberID:  member.UserID,
			Status:    string(member.SubscriptionStatus),
			ExpiresAt: member.SubscriptionExpiresAt,
		}, nil
	}

	oldStatus := member.SubscriptionStatus
	event := member.Activate(req.ExpiresAt)
	if err := u.memberRepo.Update(tx, member); err != nil {
		u.log.Warnf("Failed to activate member %s: %+v", req.MemberID, err)
		return nil, err
	}

	if err := u.settler.Settle(tx, event); err != nil {
		u.log.Warnf("Failed to settle conversion for member %s: %+v", req.MemberID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "subscription.activate", "member_profile", member.UserID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": member.SubscriptionStatus, "expires_at": req.ExpiresAt})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Subscription activated manually: member=%s, expires=%s", member.UserID, req.ExpiresAt)
	return &dto.SubscriptionResponse{
		MemberID:  member.UserID,
		Status:    string(member.SubscriptionStatus),
		ExpiresAt: member.SubscriptionExpiresAt,
	}, nil
}

func (u *subscriptionUsecase) Get(ctx context.Context, memberID uuid.UUID) (*dto.SubscriptionResponse, error) {
	member, err := u.memberRepo.FindByUserID(u.db.WithContext(ctx), memberID)
	if err != nil {
		u.log.Warnf("Failed to find member %s: %+v", memberID, err)
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	return &dto.SubscriptionResponse{
		MemberID:  member.UserID,
		Status:    string(member.SubscriptionStatus),
		ExpiresAt: member.SubscriptionExpiresAt,
	}, nil
}

func (u *subscriptionUsecase) ExpireSweep(ctx context.Context, now time.Time) (int64, error) {
	db := u.db.WithContext(ctx)

	members, err := u.memberRepo.ExpireDue(db, now)
	if err != nil {
		u.log.Warnf("Failed to expire member subscriptions: %+v", err)
		return 0, err
	}

	dependents, err := u.dependentRepo.ExpireDue(db, now)
	if err != nil {
		u.log.Warnf("Failed to expire dependent subscriptions: %+v", err)
		return members, err
	}

	total := members + dependents
	if total > 0 {
		u.log.Infof("Expire sweep: %d member(s), %d dependent(s) transitioned", members, dependents)
	}
	return total, nil
}
