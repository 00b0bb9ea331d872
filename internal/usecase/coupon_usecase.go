package usecase

import (
	"context"
	"errors"
	"strings"

	"convenio-backend/config"
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
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrCouponCodeExists     = errors.New("coupon code already exists")
	ErrCouponInvalid        = errors.New("coupon is unknown, disabled or outside its validity window")
	ErrCouponPriceAboveBase = errors.New("final price exceeds the base price for the target")
	ErrCouponPriceNegative  = errors.New("final price must not be negative")
)

type CouponUsecase interface {
	Create(ctx context.Context, req *dto.CreateCouponRequest, actorID uuid.UUID) (*dto.CouponResponse, error)
	Get(ctx context.Context, id int) (*dto.CouponResponse, error)
	GetAll(ctx context.Context) (*dto.CouponListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateCouponRequest, actorID uuid.UUID) (*dto.CouponResponse, error)
	Toggle(ctx context.Context, id int, actorID uuid.UUID) (*dto.CouponResponse, error)
	Delete(ctx context.Context, id int, actorID uuid.UUID) error
	// Resolve maps a code + target to the checkout price at the current
	// instant.
	Resolve(ctx context.Context, req *dto.ResolveCouponRequest) (*dto.ResolveCouponResponse, error)
}

type couponUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	planCfg      config.PlanConfig
	couponRepo   repository.CouponRepository
	auditService service.AuditService
}

func NewCouponUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	planCfg config.PlanConfig,
	couponRepo repository.CouponRepository,
	auditService service.AuditService,
) CouponUsecase {
	return &couponUsecase{
		db:           db,
		log:          log,
		planCfg:      planCfg,
		couponRepo:   couponRepo,
		auditService: auditService,
	}
}

func (u *couponUsecase) Create(ctx context.Context, req *dto.CreateCouponRequest, actorID uuid.UUID) (*dto.CouponResponse, error) {
	base, ok := u.planCfg.BasePriceFor(req.Target)
	if !ok {
		return nil, ErrCouponInvalid
	}
	if req.FinalPrice.IsNegative() {
		return nil, ErrCouponPriceNegative
	}
	if req.FinalPrice.GreaterThan(base) {
		return nil, ErrCouponPriceAboveBase
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	coupon := &entity.Coupon{
		Code:       strings.ToUpper(req.Code),
		Target:     req.Target,
		FinalPrice: req.FinalPrice,
		// Redundant, for display; FinalPrice stays authoritative.
		DiscountValue: base.Sub(req.FinalPrice),
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		Description:   req.Description,
		Enabled:       enabled,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.couponRepo.Create(tx, coupon); err != nil {
		if isDuplicateKeyError(err, "code") {
			return nil, ErrCouponCodeExists
		}
		u.log.Warnf("Failed to create coupon: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &actorID, "coupon.create", "coupon", coupon.Code, coupon)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CouponToResponse(coupon), nil
}

func (u *couponUsecase) Get(ctx context.Context, id int) (*dto.CouponResponse, error) {
	coupon, err := u.couponRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find coupon %d: %+v", id, err)
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return converter.CouponToResponse(coupon), nil
}

func (u *couponUsecase) GetAll(ctx context.Context) (*dto.CouponListResponse, error) {
	coupons, err := u.couponRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find coupons: %+v", err)
		return nil, err
	}
	return &dto.CouponListResponse{
		Coupons: converter.CouponsToResponses(coupons),
		Total:   len(coupons),
	}, nil
}

func (u *couponUsecase) Update(ctx context.Context, id int, req *dto.UpdateCouponRequest, actorID uuid.UUID) (*dto.CouponResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	coupon, err := u.couponRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find coupon %d: %+v", id, err)
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	old := *coupon
	base, _ := u.planCfg.BasePriceFor(coupon.Target)

	if req.FinalPrice != nil {
		if req.FinalPrice.IsNegative() {
			return nil, ErrCouponPriceNegative
		}
		if req.FinalPrice.GreaterThan(base) {
			return nil, ErrCouponPriceAboveBase
		}
		coupon.FinalPrice = *req.FinalPrice
		coupon.DiscountValue = base.Sub(*req.FinalPrice)
	}
	if req.ValidFrom != nil {
		coupon.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		coupon.ValidUntil = req.ValidUntil
	}
	if req.Description != nil {
		coupon.Description = *req.Description
	}
	if req.Enabled != nil {
		coupon.Enabled = *req.Enabled
	}

	if err := u.couponRepo.Update(tx, coupon); err != nil {
		u.log.Warnf("Failed to update coupon %d: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "coupon.update", "coupon", coupon.Code, old, coupon)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CouponToResponse(coupon), nil
}

func (u *couponUsecase) Toggle(ctx context.Context, id int, actorID uuid.UUID) (*dto.CouponResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	coupon, err := u.couponRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find coupon %d: %+v", id, err)
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	old := *coupon
	coupon.Enabled = !coupon.Enabled

	if err := u.couponRepo.Update(tx, coupon); err != nil {
		u.log.Warnf("Failed to toggle coupon %d: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "coupon.toggle", "coupon", coupon.Code, old, coupon)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.CouponToResponse(coupon), nil
}

// Delete is a hard delete; the amount recorded on each payment is the
// surviving audit record of a coupon's use.
func (u *couponUsecase) Delete(ctx context.Context, id int, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	coupon, err := u.couponRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find coupon %d: %+v", id, err)
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}

	if err := u.couponRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete coupon %d: %+v", id, err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &actorID, "coupon.delete", "coupon", coupon.Code, coupon)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *couponUsecase) Resolve(ctx context.Context, req *dto.ResolveCouponRequest) (*dto.ResolveCouponResponse, error) {
	coupon, err := u.resolveCoupon(u.db.WithContext(ctx), req.Code, req.Target)
	if err != nil {
		return nil, err
	}

	base, _ := u.planCfg.BasePriceFor(req.Target)
	return &dto.ResolveCouponResponse{
		FinalPrice:    coupon.FinalPrice,
		DiscountValue: base.Sub(coupon.FinalPrice),
	}, nil
}

// resolveCoupon fetches and validates a coupon for a target at the
// current instant. Shared with the payment orchestrator.
func (u *couponUsecase) resolveCoupon(db *gorm.DB, code, target string) (*entity.Coupon, error) {
	coupon, err := u.couponRepo.FindByCode(db, code)
	if err != nil {
		u.log.Warnf("Failed to find coupon by code %q: %+v", code, err)
		return nil, err
	}
	if coupon == nil || !coupon.ResolvesFor(target, nowFunc()) {
		return nil, ErrCouponInvalid
	}
	return coupon, nil
}
