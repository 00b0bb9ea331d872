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
	ErrServiceNameExists = errors.New("service name already exists")
	ErrServiceInUse      = errors.New("service has recorded consultations")
	ErrPriceNegative     = errors.New("base price must not be negative")
)

type ServiceUsecase interface {
	Create(ctx context.Context, req *dto.CreateServiceRequest, actorID uuid.UUID) (*dto.ServiceResponse, error)
	Get(ctx context.Context, id int) (*dto.ServiceResponse, error)
	GetAll(ctx context.Context) (*dto.ServiceListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateServiceRequest, actorID uuid.UUID) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, id int, actorID uuid.UUID) error
}

type serviceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceUsecase) Create(ctx context.Context, req *dto.CreateServiceRequest, actorID uuid.UUID) (*dto.ServiceResponse, error) {
	if req.BasePrice.IsNegative() {
		return nil, ErrPriceNegative
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc := &entity.Service{
		Name:      req.Name,
		BasePrice: req.BasePrice,
	}

	if err := u.serviceRepo.Create(tx, svc); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrServiceNameExists
		}
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &actorID, "service.create", "service", svc.Name, svc)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Get(ctx context.Context, id int) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) GetAll(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, err
	}
	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceUsecase) Update(ctx context.Context, id int, req *dto.UpdateServiceRequest, actorID uuid.UUID) (*dto.ServiceResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	old := *svc
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, ErrPriceNegative
		}
		svc.BasePrice = *req.BasePrice
	}

	if err := u.serviceRepo.Update(tx, svc); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrServiceNameExists
		}
		u.log.Warnf("Failed to update service %d: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "service.update", "service", svc.Name, old, svc)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Delete(ctx context.Context, id int, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", id, err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	if err := u.serviceRepo.Delete(tx, id); err != nil {
		// Consultations reference services; blocked by the schema.
		if isForeignKeyError(err, "service") {
			return ErrServiceInUse
		}
		u.log.Warnf("Failed to delete service %d: %+v", id, err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &actorID, "service.delete", "service", svc.Name, svc)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
