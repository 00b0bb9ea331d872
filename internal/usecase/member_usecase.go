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
	ErrTooManyDependents    = errors.New("member already has the maximum number of dependents")
	ErrDependentNotOwned    = errors.New("dependent does not belong to the member")
	ErrMemberDocumentExists = errors.New("document already registered")
)

type MemberUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (*dto.MemberResponse, error)
	GetAll(ctx context.Context) (*dto.MemberListResponse, error)
	AddDependent(ctx context.Context, memberID uuid.UUID, req *dto.CreateDependentRequest, actorID uuid.UUID) (*dto.DependentResponse, error)
	ListDependents(ctx context.Context, memberID uuid.UUID) (*dto.DependentListResponse, error)
	UpdateDependent(ctx context.Context, memberID, dependentID uuid.UUID, req *dto.UpdateDependentRequest, actorID uuid.UUID) (*dto.DependentResponse, error)
}

type memberUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	memberRepo    repository.MemberRepository
	dependentRepo repository.DependentRepository
	auditService  service.AuditService
}

func NewMemberUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	memberRepo repository.MemberRepository,
	dependentRepo repository.DependentRepository,
	auditService service.AuditService,
) MemberUsecase {
	return &memberUsecase{
		db:            db,
		log:           log,
		memberRepo:    memberRepo,
		dependentRepo: dependentRepo,
		auditService:  auditService,
	}
}

func (u *memberUsecase) Get(ctx context.Context, userID uuid.UUID) (*dto.MemberResponse, error) {
	member, err := u.memberRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find member %s: %+v", userID, err)
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return converter.MemberToResponse(member), nil
}

func (u *memberUsecase) GetAll(ctx context.Context) (*dto.MemberListResponse, error) {
	members, err := u.memberRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list members: %+v", err)
		return nil, err
	}
	return &dto.MemberListResponse{
		Members: converter.MembersToResponses(members),
		Total:   len(members),
	}, nil
}

// AddDependent registers a new dependent under the member. The member
// row is locked so the ten-dependent cap holds under concurrency.
func (u *memberUsecase) AddDependent(ctx context.Context, memberID uuid.UUID, req *dto.CreateDependentRequest, actorID uuid.UUID) (*dto.DependentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	member, err := u.memberRepo.FindByUserIDForUpdate(tx, memberID)
	if err != nil {
		u.log.Warnf("Failed to find member %s: %+v", memberID, err)
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	count, err := u.dependentRepo.CountByMemberID(tx, memberID)
	if err != nil {
		u.log.Warnf("Failed to count dependents of %s: %+v", memberID, err)
		return nil, err
	}
	if count >= entity.MaxDependentsPerMember {
		return nil, ErrTooManyDependents
	}

	dependent := &entity.Dependent{
		MemberID:           memberID,
		FullName:           req.FullName,
		Document:           req.Document,
		SubscriptionStatus: entity.SubscriptionStatusPending,
	}

	if err := u.dependentRepo.Create(tx, dependent); err != nil {
		u.log.Warnf("Failed to create dependent for %s: %+v", memberID, err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &actorID, "dependent.create", "dependent", dependent.ID.String(), dependent)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DependentToResponse(dependent), nil
}

func (u *memberUsecase) ListDependents(ctx context.Context, memberID uuid.UUID) (*dto.DependentListResponse, error) {
	member, err := u.memberRepo.FindByUserID(u.db.WithContext(ctx), memberID)
	if err != nil {
		u.log.Warnf("Failed to find member %s: %+v", memberID, err)
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	dependents, err := u.dependentRepo.FindByMemberID(u.db.WithContext(ctx), memberID)
	if err != nil {
		u.log.Warnf("Failed to list dependents of %s: %+v", memberID, err)
		return nil, err
	}
	return &dto.DependentListResponse{
		Dependents: converter.DependentsToResponses(dependents),
		Total:      len(dependents),
	}, nil
}

func (u *memberUsecase) UpdateDependent(ctx context.Context, memberID, dependentID uuid.UUID, req *dto.UpdateDependentRequest, actorID uuid.UUID) (*dto.DependentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	dependent, err := u.dependentRepo.FindByID(tx, dependentID)
	if err != nil {
		u.log.Warnf("Failed to find dependent %s: %+v", dependentID, err)
		return nil, err
	}
	if dependent == nil {
		return nil, ErrDependentNotFound
	}
	if dependent.MemberID != memberID {
		return nil, ErrDependentNotOwned
	}

	old := *dependent
	if req.FullName != "" {
		dependent.FullName = req.FullName
	}
	if req.Document != "" {
		dependent.Document = req.Document
	}

	if err := u.dependentRepo.Update(tx, dependent); err != nil {
		u.log.Warnf("Failed to update dependent %s: %+v", dependentID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "dependent.update", "dependent", dependentID.String(), old, dependent)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DependentToResponse(dependent), nil
}
