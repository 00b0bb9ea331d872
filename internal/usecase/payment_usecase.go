package usecase

import (
	"context"
	"errors"
	"time"

	"convenio-backend/config"
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
	"convenio-backend/internal/domain/repository"
	"convenio-backend/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPaymentMismatch   = errors.New("amount paid does not match the expected price")
	ErrDependentNotFound = errors.New("dependent not found")
)

// PaymentUsecase is the orchestrated activation path. One transaction
// owns payment reconciliation, subscription activation and conversion
// settlement; any inner failure rolls back the whole unit so the
// external payment stays unreconciled for a retry.
type PaymentUsecase interface {
	ConfirmPayment(ctx context.Context, req *dto.PaymentConfirmedRequest) (*dto.SubscriptionResponse, error)
}

type paymentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	planCfg       config.PlanConfig
	memberRepo    repository.MemberRepository
	dependentRepo repository.DependentRepository
	couponRepo    repository.CouponRepository
	paymentRepo   repository.SubscriptionPaymentRepository
	settler       *ConversionSettler
	auditService  service.AuditService
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	planCfg config.PlanConfig,
	memberRepo repository.MemberRepository,
	dependentRepo repository.DependentRepository,
	couponRepo repository.CouponRepository,
	paymentRepo repository.SubscriptionPaymentRepository,
	settler *ConversionSettler,
	auditService service.AuditService,
) PaymentUsecase {
	return &paymentUsecase{
		db:            db,
		log:           log,
		planCfg:       planCfg,
		memberRepo:    memberRepo,
		dependentRepo: dependentRepo,
		couponRepo:    couponRepo,
		paymentRepo:   paymentRepo,
		settler:       settler,
		auditService:  auditService,
	}
}

// ConfirmPayment reconciles a gateway confirmation. Replays with the
// same payment reference are detected by the unique constraint on
// subscription_payments and answered with the current subscription
// state, leaving the store untouched.
func (u *paymentUsecase) ConfirmPayment(ctx context.Context, req *dto.PaymentConfirmedRequest) (*dto.SubscriptionResponse, error) {
	expected, err := u.expectedPrice(ctx, req.CouponCode, req.Target)
	if err != nil {
		return nil, err
	}
	if !req.AmountPaid.Equal(expected) {
		u.log.Warnf("Payment mismatch for %s: paid=%s, expected=%s", req.PaymentReference, req.AmountPaid, expected)
		return nil, ErrPaymentMismatch
	}

	now := nowFunc()
	expiresAt := now.AddDate(1, 0, 0)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	payment := &entity.SubscriptionPayment{
		PaymentReference: req.PaymentReference,
		Target:           req.Target,
		SubjectID:        req.UserID,
		AmountPaid:       req.AmountPaid,
	}
	if req.CouponCode != "" {
		code := req.CouponCode
		payment.CouponCode = &code
	}

	// Inserted first so a replayed confirmation trips the unique
	// reference before any state is touched.
	if err := u.paymentRepo.Create(tx, payment); err != nil {
		if isDuplicateKeyError(err, "payment_reference") {
			tx.Rollback()
			u.log.Infof("Replayed payment confirmation %s, returning current state", req.PaymentReference)
			return u.currentState(ctx, req)
		}
		u.log.Warnf("Failed to record payment %s: %+v", req.PaymentReference, err)
		return nil, err
	}

	var response *dto.SubscriptionResponse
	switch req.Target {
	case entity.PlanTargetTitular:
		response, err = u.activateMember(ctx, tx, req, expiresAt)
	case entity.PlanTargetDependente:
		response, err = u.activateDependent(ctx, tx, req, expiresAt)
	default:
		err = errors.New("unknown plan target")
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Payment confirmed: reference=%s, target=%s, subject=%s, expires=%s",
		req.PaymentReference, req.Target, req.UserID, expiresAt)
	return response, nil
}

func (u *paymentUsecase) activateMember(ctx context.Context, tx *gorm.DB, req *dto.PaymentConfirmedRequest, expiresAt time.Time) (*dto.SubscriptionResponse, error) {
	member, err := u.memberRepo.FindByUserIDForUpdate(tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find member %s: %+v", req.UserID, err)
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	event := member.Activate(expiresAt)
	if err := u.memberRepo.Update(tx, member); err != nil {
		u.log.Warnf("Failed to activate member %s: %+v", req.UserID, err)
		return nil, err
	}

	if err := u.settler.Settle(tx, event); err != nil {
		u.log.Warnf("Failed to settle conversion for member %s: %+v", req.UserID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, nil, "subscription.payment_confirmed", "member_profile", member.UserID.String(),
		nil,
		map[string]interface{}{"status": member.SubscriptionStatus, "expires_at": expiresAt, "payment_reference": req.PaymentReference})

	return &dto.SubscriptionResponse{
		MemberID:  member.UserID,
		Status:    string(member.SubscriptionStatus),
		ExpiresAt: member.SubscriptionExpiresAt,
	}, nil
}

func (u *paymentUsecase) activateDependent(ctx context.Context, tx *gorm.DB, req *dto.PaymentConfirmedRequest, expiresAt time.Time) (*dto.SubscriptionResponse, error) {
	dependent, err := u.dependentRepo.FindByIDForUpdate(tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find dependent %s: %+v", req.UserID, err)
		return nil, err
	}
	if dependent == nil {
		return nil, ErrDependentNotFound
	}

	dependent.Activate(expiresAt)
	if err := u.dependentRepo.Update(tx, dependent); err != nil {
		u.log.Warnf("Failed to activate dependent %s: %+v", req.UserID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, nil, "subscription.payment_confirmed", "dependent", dependent.ID.String(),
		nil,
		map[string]interface{}{"status": dependent.SubscriptionStatus, "expires_at": expiresAt, "payment_reference": req.PaymentReference})

	return &dto.SubscriptionResponse{
		MemberID:  dependent.ID,
		Status:    string(dependent.SubscriptionStatus),
		ExpiresAt: dependent.SubscriptionExpiresAt,
	}, nil
}

// currentState answers a replayed confirmation with the subject's
// present subscription state.
func (u *paymentUsecase) currentState(ctx context.Context, req *dto.PaymentConfirmedRequest) (*dto.SubscriptionResponse, error) {
	db := u.db.WithContext(ctx)

	if req.Target == entity.PlanTargetDependente {
		dependent, err := u.dependentRepo.FindByID(db, req.UserID)
		if err != nil {
			return nil, err
		}
		if dependent == nil {
			return nil, ErrDependentNotFound
		}
		return &dto.SubscriptionResponse{
			MemberID:  dependent.ID,
			Status:    string(dependent.SubscriptionStatus),
			ExpiresAt: dependent.SubscriptionExpiresAt,
		}, nil
	}

	member, err := u.memberRepo.FindByUserID(db, req.UserID)
	if err != nil {
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

func (u *paymentUsecase) expectedPrice(ctx context.Context, couponCode, target string) (decimal.Decimal, error) {
	if couponCode != "" {
		coupon, err := u.couponRepo.FindByCode(u.db.WithContext(ctx), couponCode)
		if err != nil {
			u.log.Warnf("Failed to find coupon %q: %+v", couponCode, err)
			return decimal.Decimal{}, err
		}
		if coupon == nil || !coupon.ResolvesFor(target, nowFunc()) {
			return decimal.Decimal{}, ErrCouponInvalid
		}
		return coupon.FinalPrice, nil
	}

	base, ok := u.planCfg.BasePriceFor(target)
	if !ok {
		return decimal.Decimal{}, ErrCouponInvalid
	}
	return base, nil
}
