package usecase

import (
	"context"
	"errors"

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
	ErrGrantNotFound    = errors.New("no scheduling access grant for professional")
	ErrGrantNotExtended = errors.New("new expiry must be after the current expiry")
)

// SchedulingAccessUsecase manages the expirable capability to use the
// scheduling sub-application. Independent of subscription state.
type SchedulingAccessUsecase interface {
	Grant(ctx context.Context, req *dto.GrantSchedulingAccessRequest, actorID uuid.UUID) (*dto.SchedulingAccessResponse, error)
	Extend(ctx context.Context, req *dto.ExtendSchedulingAccessRequest, actorID uuid.UUID) (*dto.SchedulingAccessResponse, error)
	Revoke(ctx context.Context, req *dto.RevokeSchedulingAccessRequest, actorID uuid.UUID) (*dto.SchedulingAccessResponse, error)
	Query(ctx context.Context, professionalID uuid.UUID) (*dto.SchedulingAccessResponse, error)
}

type schedulingAccessUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	grantRepo        repository.SchedulingAccessRepository
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
}

func NewSchedulingAccessUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	grantRepo repository.SchedulingAccessRepository,
	professionalRepo repository.ProfessionalRepository,
	auditService service.AuditService,
) SchedulingAccessUsecase {
	return &schedulingAccessUsecase{
		db:               db,
		log:              log,
		grantRepo:        grantRepo,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

func (u *schedulingAccessUsecase) Grant(ctx context.Context, req *dto.GrantSchedulingAccessRequest, actorID uuid.UUID) (*dto.SchedulingAccessResponse, error) {
	now := nowFunc()
	if !req.ExpiresAt.After(now) {
		return nil, ErrExpiryInPast
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByUserID(tx, req.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", req.ProfessionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	expiresAt := req.ExpiresAt
	grant := &entity.SchedulingAccessGrant{
		ProfessionalID: req.ProfessionalID,
		HasAccess:      true,
		ExpiresAt:      &expiresAt,
		GrantedBy:      &actorID,
		GrantedAt:      &now,
		Reason:         req.Reason,
	}

	if err := u.grantRepo.Upsert(tx, grant); err != nil {
		u.log.Warnf("Failed to grant scheduling access to %s: %+v", req.ProfessionalID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "scheduling_access.grant", "scheduling_access_grant",
		req.ProfessionalID.String(), nil, grant)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SchedulingAccessToResponse(req.ProfessionalID, grant, now), nil
}

func (u *schedulingAccessUsecase) Extend(ctx context.Context, req *dto.ExtendSchedulingAccessRequest, actorID uuid.UUID) (*dto.SchedulingAccessResponse, error) {
	now := nowFunc()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	grant, err := u.grantRepo.FindByProfessionalID(tx, req.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find grant for %s: %+v", req.ProfessionalID, err)
		return nil, err
	}
	if grant == nil || !grant.HasAccess {
		return nil, ErrGrantNotFound
	}
	if grant.ExpiresAt != nil && !req.NewExpiresAt.After(*grant.ExpiresAt) {
		return nil, ErrGrantNotExtended
	}

	old := *grant
	newExpiry := req.NewExpiresAt
	grant.ExpiresAt = &newExpiry
	if req.Reason != "" {
		grant.Reason = req.Reason
	}

	if err := u.grantRepo.Update(tx, grant); err != nil {
		u.log.Warnf("Failed to extend grant for %s: %+v", req.ProfessionalID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "scheduling_access.extend", "scheduling_access_grant",
		req.ProfessionalID.String(), old, grant)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SchedulingAccessToResponse(req.ProfessionalID, grant, now), nil
}

// Revoke clears has_access but keeps the grant history for audit.
func (u *schedulingAccessUsecase) Revoke(ctx context.Context, req *dto.RevokeSchedulingAccessRequest, actorID uuid.UUID) (*dto.SchedulingAccessResponse, error) {
	now := nowFunc()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	grant, err := u.grantRepo.FindByProfessionalID(tx, req.ProfessionalID)
	if err != nil {
		u.log.Warnf("Failed to find grant for %s: %+v", req.ProfessionalID, err)
		return nil, err
	}
	if grant == nil {
		return nil, ErrGrantNotFound
	}

	old := *grant
	grant.HasAccess = false

	if err := u.grantRepo.Update(tx, grant); err != nil {
		u.log.Warnf("Failed to revoke grant for %s: %+v", req.ProfessionalID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "scheduling_access.revoke", "scheduling_access_grant",
		req.ProfessionalID.String(), old, grant)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SchedulingAccessToResponse(req.ProfessionalID, grant, now), nil
}

func (u *schedulingAccessUsecase) Query(ctx context.Context, professionalID uuid.UUID) (*dto.SchedulingAccessResponse, error) {
	grant, err := u.grantRepo.FindByProfessionalID(u.db.WithContext(ctx), professionalID)
	if err != nil {
		u.log.Warnf("Failed to find grant for %s: %+v", professionalID, err)
		return nil, err
	}
	return converter.SchedulingAccessToResponse(professionalID, grant, nowFunc()), nil
}
