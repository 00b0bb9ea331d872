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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")

type ProfessionalUsecase interface {
	Create(ctx context.Context, req *dto.CreateProfessionalRequest, actorID uuid.UUID) (*dto.ProfessionalResponse, error)
	Get(ctx context.Context, userID uuid.UUID) (*dto.ProfessionalResponse, error)
	GetAll(ctx context.Context) (*dto.ProfessionalListResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfessionalRequest, actorID uuid.UUID) (*dto.ProfessionalResponse, error)
}

type professionalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	roleRepo         repository.RoleRepository
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
}

func NewProfessionalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	professionalRepo repository.ProfessionalRepository,
	auditService service.AuditService,
) ProfessionalUsecase {
	return &professionalUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

func validPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(oneHundred)
}

func (u *professionalUsecase) Create(ctx context.Context, req *dto.CreateProfessionalRequest, actorID uuid.UUID) (*dto.ProfessionalResponse, error) {
	if !validPercentage(req.Percentage) {
		return nil, ErrPercentageOutOfRange
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		IsActive: true,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	role, err := u.roleRepo.FindByName(tx, entity.RoleProfessional)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	if err := u.userRepo.AddRole(tx, user, role); err != nil {
		u.log.Warnf("Failed to grant professional role: %+v", err)
		return nil, err
	}

	professional := &entity.ProfessionalProfile{
		UserID:      user.ID,
		Category:    req.Category,
		PhoneNumber: req.PhoneNumber,
		Percentage:  req.Percentage,
	}

	if err := u.professionalRepo.Create(tx, professional); err != nil {
		u.log.Warnf("Failed to create professional profile: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &actorID, "professional.create", "professional_profile", user.ID.String(), professional)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	professional.User = *user
	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) Get(ctx context.Context, userID uuid.UUID) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", userID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) GetAll(ctx context.Context) (*dto.ProfessionalListResponse, error) {
	professionals, err := u.professionalRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list professionals: %+v", err)
		return nil, err
	}
	return &dto.ProfessionalListResponse{
		Professionals: converter.ProfessionalsToResponses(professionals),
		Total:         len(professionals),
	}, nil
}

// Update patches the profile. A percentage change only affects splits
// computed after the change; past reports are derived from stored rows.
func (u *professionalUsecase) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfessionalRequest, actorID uuid.UUID) (*dto.ProfessionalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", userID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	old := *professional
	if req.Category != nil {
		professional.Category = *req.Category
	}
	if req.PhoneNumber != nil {
		professional.PhoneNumber = *req.PhoneNumber
	}
	if req.Percentage != nil {
		if !validPercentage(*req.Percentage) {
			return nil, ErrPercentageOutOfRange
		}
		professional.Percentage = *req.Percentage
	}

	if err := u.professionalRepo.Update(tx, professional); err != nil {
		u.log.Warnf("Failed to update professional %s: %+v", userID, err)
		return nil, err
	}

	if req.FullName != nil {
		user, err := u.userRepo.FindByID(tx, userID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			user.FullName = *req.FullName
			if err := u.userRepo.Update(tx, user); err != nil {
				u.log.Warnf("Failed to update user %s: %+v", userID, err)
				return nil, err
			}
		}
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "professional.update", "professional_profile", userID.String(), old, professional)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.Get(ctx, userID)
}
