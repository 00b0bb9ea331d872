package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"convenio-backend/internal/converter"
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
	"convenio-backend/internal/domain/repository"
	"convenio-backend/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAffiliateNotFound  = errors.New("affiliate not found")
	ErrReferralCodeExists = errors.New("referral code already in use")
	ErrAffiliateExists    = errors.New("user is already an affiliate")
)

type AffiliateUsecase interface {
	Create(ctx context.Context, req *dto.CreateAffiliateRequest, actorID uuid.UUID) (*dto.AffiliateResponse, error)
	Get(ctx context.Context, userID uuid.UUID) (*dto.AffiliateResponse, error)
	GetAll(ctx context.Context) (*dto.AffiliateListResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateAffiliateRequest, actorID uuid.UUID) (*dto.AffiliateResponse, error)
	// RecordClick is the public tracking endpoint. Unknown or inactive
	// codes are swallowed so the endpoint leaks nothing to probers.
	RecordClick(ctx context.Context, req *dto.RecordClickRequest) error
	// PromoteToRegistration runs inside the signup transaction of the
	// auth flow; it attributes the new user to the visitor's earliest
	// click. Write-once per user.
	PromoteToRegistration(tx *gorm.DB, visitorID string, userID uuid.UUID) error
	Dashboard(ctx context.Context, userID uuid.UUID) (*dto.AffiliateDashboardResponse, error)
}

type affiliateUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	redisClient    *redis.Client
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	affiliateRepo  repository.AffiliateRepository
	referralRepo   repository.ReferralRepository
	commissionRepo repository.CommissionRepository
	auditService   service.AuditService
}

func NewAffiliateUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	redisClient *redis.Client,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	affiliateRepo repository.AffiliateRepository,
	referralRepo repository.ReferralRepository,
	commissionRepo repository.CommissionRepository,
	auditService service.AuditService,
) AffiliateUsecase {
	return &affiliateUsecase{
		db:             db,
		log:            log,
		redisClient:    redisClient,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		affiliateRepo:  affiliateRepo,
		referralRepo:   referralRepo,
		commissionRepo: commissionRepo,
		auditService:   auditService,
	}
}

// Create enrolls an existing user in the referral program and grants
// the affiliate role.
func (u *affiliateUsecase) Create(ctx context.Context, req *dto.CreateAffiliateRequest, actorID uuid.UUID) (*dto.AffiliateResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", req.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := u.affiliateRepo.FindByUserID(tx, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAffiliateExists
	}

	affiliate := &entity.AffiliateProfile{
		UserID:           req.UserID,
		ReferralCode:     strings.ToUpper(req.ReferralCode),
		Status:           entity.AffiliateStatusActive,
		CommissionAmount: req.CommissionAmount,
	}
	if req.PixKey != "" {
		pixKey := req.PixKey
		affiliate.PixKey = &pixKey
	}

	if err := u.affiliateRepo.Create(tx, affiliate); err != nil {
		if isDuplicateKeyError(err, "referral_code") {
			return nil, ErrReferralCodeExists
		}
		u.log.Warnf("Failed to create affiliate %s: %+v", req.UserID, err)
		return nil, err
	}

	role, err := u.roleRepo.FindByName(tx, entity.RoleAffiliate)
	if err != nil {
		return nil, err
	}
	if role != nil && !user.HasRole(entity.RoleAffiliate) {
		if err := u.userRepo.AddRole(tx, user, role); err != nil {
			u.log.Warnf("Failed to grant affiliate role to %s: %+v", req.UserID, err)
			return nil, err
		}
	}

	u.auditService.LogCreate(ctx, tx, &actorID, "affiliate.create", "affiliate_profile", affiliate.UserID.String(), affiliate)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	affiliate.User = *user
	return converter.AffiliateToResponse(affiliate), nil
}

func (u *affiliateUsecase) Get(ctx context.Context, userID uuid.UUID) (*dto.AffiliateResponse, error) {
	affiliate, err := u.affiliateRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find affiliate %s: %+v", userID, err)
		return nil, err
	}
	if affiliate == nil {
		return nil, ErrAffiliateNotFound
	}
	return converter.AffiliateToResponse(affiliate), nil
}

func (u *affiliateUsecase) GetAll(ctx context.Context) (*dto.AffiliateListResponse, error) {
	affiliates, err := u.affiliateRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list affiliates: %+v", err)
		return nil, err
	}
	return &dto.AffiliateListResponse{
		Affiliates: converter.AffiliatesToResponses(affiliates),
		Total:      len(affiliates),
	}, nil
}

// Update patches status, default commission amount and pix key. The
// amount only affects commissions accrued after the change.
func (u *affiliateUsecase) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateAffiliateRequest, actorID uuid.UUID) (*dto.AffiliateResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affiliate, err := u.affiliateRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find affiliate %s: %+v", userID, err)
		return nil, err
	}
	if affiliate == nil {
		return nil, ErrAffiliateNotFound
	}

	old := *affiliate
	if req.Status != nil {
		affiliate.Status = entity.AffiliateStatus(*req.Status)
	}
	if req.CommissionAmount != nil {
		affiliate.CommissionAmount = *req.CommissionAmount
	}
	if req.PixKey != nil {
		affiliate.PixKey = req.PixKey
	}

	if err := u.affiliateRepo.Update(tx, affiliate); err != nil {
		u.log.Warnf("Failed to update affiliate %s: %+v", userID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "affiliate.update", "affiliate_profile", affiliate.UserID.String(), old, affiliate)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AffiliateToResponse(affiliate), nil
}

func (u *affiliateUsecase) RecordClick(ctx context.Context, req *dto.RecordClickRequest) error {
	db := u.db.WithContext(ctx)

	affiliate, err := u.resolveAffiliate(db, req.ReferralCode)
	if err != nil {
		return err
	}
	if affiliate == nil || !affiliate.IsActive() {
		// Silent no-op; the response is indistinguishable from success.
		return nil
	}

	event := &entity.ReferralEvent{
		AffiliateID: affiliate.UserID,
		VisitorID:   req.VisitorID,
		Stage:       entity.ReferralStageClick,
	}
	if err := u.referralRepo.CreateEvent(db, event); err != nil {
		u.log.Warnf("Failed to record referral click: %+v", err)
		return err
	}

	u.bumpClickCounter(ctx, affiliate.ReferralCode)
	return nil
}

// resolveAffiliate accepts the public referral code and, for links
// minted before codes existed, a raw affiliate user id.
func (u *affiliateUsecase) resolveAffiliate(db *gorm.DB, code string) (*entity.AffiliateProfile, error) {
	affiliate, err := u.affiliateRepo.FindByReferralCode(db, code)
	if err != nil {
		u.log.Warnf("Failed to resolve referral code %q: %+v", code, err)
		return nil, err
	}
	if affiliate != nil {
		return affiliate, nil
	}

	legacyID, err := uuid.Parse(code)
	if err != nil {
		return nil, nil
	}
	affiliate, err = u.affiliateRepo.FindByUserID(db, legacyID)
	if err != nil {
		u.log.Warnf("Failed to resolve legacy referral id %q: %+v", code, err)
		return nil, err
	}
	return affiliate, nil
}

// bumpClickCounter keeps a per-day click counter in Redis for cheap
// dashboard sparklines. Best effort; failures are only logged.
func (u *affiliateUsecase) bumpClickCounter(ctx context.Context, code string) {
	if u.redisClient == nil {
		return
	}
	key := fmt.Sprintf("referral:clicks:%s:%s", code, nowFunc().Format("2006-01-02"))
	if err := u.redisClient.Incr(ctx, key).Err(); err != nil {
		u.log.Warnf("Failed to bump click counter: %+v", err)
		return
	}
	u.redisClient.Expire(ctx, key, 48*time.Hour)
}

// PromoteToRegistration runs inside the signup transaction. It turns
// the visitor's earliest click into a write-once attribution for the
// new user and records the registration funnel event. Attribution never
// changes once set; replays and races collapse onto the first success.
func (u *affiliateUsecase) PromoteToRegistration(tx *gorm.DB, visitorID string, userID uuid.UUID) error {
	if visitorID == "" {
		return nil
	}

	click, err := u.referralRepo.FindFirstClickByVisitor(tx, visitorID)
	if err != nil {
		return err
	}
	if click == nil {
		return nil
	}

	existing, err := u.referralRepo.FindReferredUser(tx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		referred := &entity.ReferredUser{
			UserID:      userID,
			AffiliateID: click.AffiliateID,
		}
		if err := u.referralRepo.CreateReferredUser(tx, referred); err != nil {
			if !isDuplicateKeyError(err, "referred_users") {
				return err
			}
		}
	}

	hasRegistration, err := u.referralRepo.HasRegistrationForVisitor(tx, visitorID)
	if err != nil {
		return err
	}
	if !hasRegistration {
		registration := &entity.ReferralEvent{
			AffiliateID:  click.AffiliateID,
			VisitorID:    visitorID,
			Stage:        entity.ReferralStageRegistration,
			LinkedUserID: &userID,
		}
		if err := u.referralRepo.CreateEvent(tx, registration); err != nil {
			if !isDuplicateKeyError(err, "referral_events") {
				return err
			}
		}
	}

	u.log.Infof("Referral attribution: user=%s, affiliate=%s", userID, click.AffiliateID)
	return nil
}

// Dashboard aggregates the affiliate's funnel, commission ledger and
// referred users.
func (u *affiliateUsecase) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.AffiliateDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	affiliate, err := u.affiliateRepo.FindByUserID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find affiliate %s: %+v", userID, err)
		return nil, err
	}
	if affiliate == nil {
		return nil, ErrAffiliateNotFound
	}

	var (
		start = time.Time{}
		end   = nowFunc().Add(time.Second)
	)

	stats := dto.ReferralStatsResponse{}
	for stage, dest := range map[entity.ReferralStage]*int64{
		entity.ReferralStageClick:        &stats.Clicks,
		entity.ReferralStageRegistration: &stats.Registrations,
		entity.ReferralStageConversion:   &stats.Conversions,
	} {
		count, err := u.referralRepo.CountByAffiliateAndStage(db, userID, stage, start, end)
		if err != nil {
			u.log.Warnf("Failed to count %s events for %s: %+v", stage, userID, err)
			return nil, err
		}
		*dest = count
	}

	summary, err := u.commissionRepo.SummarizeByAffiliate(db, userID)
	if err != nil {
		u.log.Warnf("Failed to summarize commissions for %s: %+v", userID, err)
		return nil, err
	}

	referred, err := u.referralRepo.ListReferredUsers(db, userID)
	if err != nil {
		u.log.Warnf("Failed to list referred users for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AffiliateDashboardResponse{
		Affiliate: *converter.AffiliateToResponse(affiliate),
		Stats:     stats,
		Commissions: dto.CommissionSummaryResponse{
			PendingTotal: summary.PendingTotal,
			PaidTotal:    summary.PaidTotal,
			Count:        summary.Count,
		},
		ReferredUsers: converter.ReferredUsersToResponses(referred),
	}, nil
}
