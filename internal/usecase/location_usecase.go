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

var ErrPrivatePatientNotFound = errors.New("private patient not found")

// LocationUsecase manages a professional's attendance locations and
// private patient roster.
type LocationUsecase interface {
	CreateLocation(ctx context.Context, professionalID uuid.UUID, req *dto.CreateLocationRequest) (*dto.LocationResponse, error)
	ListLocations(ctx context.Context, professionalID uuid.UUID) (*dto.LocationListResponse, error)
	UpdateLocation(ctx context.Context, professionalID uuid.UUID, id int, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	DeleteLocation(ctx context.Context, professionalID uuid.UUID, id int) error

	CreatePrivatePatient(ctx context.Context, professionalID uuid.UUID, req *dto.CreatePrivatePatientRequest) (*dto.PrivatePatientResponse, error)
	ListPrivatePatients(ctx context.Context, professionalID uuid.UUID) (*dto.PrivatePatientListResponse, error)
	DeletePrivatePatient(ctx context.Context, professionalID uuid.UUID, id uuid.UUID) error
}

type locationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	locationRepo     repository.AttendanceLocationRepository
	privateRepo      repository.PrivatePatientRepository
	professionalRepo repository.ProfessionalRepository
	auditService     service.AuditService
}

func NewLocationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locationRepo repository.AttendanceLocationRepository,
	privateRepo repository.PrivatePatientRepository,
	professionalRepo repository.ProfessionalRepository,
	auditService service.AuditService,
) LocationUsecase {
	return &locationUsecase{
		db:               db,
		log:              log,
		locationRepo:     locationRepo,
		privateRepo:      privateRepo,
		professionalRepo: professionalRepo,
		auditService:     auditService,
	}
}

// CreateLocation adds a location. Naming it default demotes any prior
// default in the same transaction, keeping at most one per professional.
func (u *locationUsecase) CreateLocation(ctx context.Context, professionalID uuid.UUID, req *dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professional, err := u.professionalRepo.FindByUserID(tx, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", professionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	if req.IsDefault {
		if err := u.locationRepo.ClearDefault(tx, professionalID); err != nil {
			u.log.Warnf("Failed to clear default location for %s: %+v", professionalID, err)
			return nil, err
		}
	}

	location := &entity.AttendanceLocation{
		ProfessionalID: professionalID,
		Name:           req.Name,
		Address:        req.Address,
		IsDefault:      req.IsDefault,
	}

	if err := u.locationRepo.Create(tx, location); err != nil {
		u.log.Warnf("Failed to create location: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LocationToResponse(location), nil
}

func (u *locationUsecase) ListLocations(ctx context.Context, professionalID uuid.UUID) (*dto.LocationListResponse, error) {
	locations, err := u.locationRepo.FindByProfessionalID(u.db.WithContext(ctx), professionalID)
	if err != nil {
		u.log.Warnf("Failed to list locations for %s: %+v", professionalID, err)
		return nil, err
	}
	return &dto.LocationListResponse{
		Locations: converter.LocationsToResponses(locations),
		Total:     len(locations),
	}, nil
}

func (u *locationUsecase) UpdateLocation(ctx context.Context, professionalID uuid.UUID, id int, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	location, err := u.locationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find location %d: %+v", id, err)
		return nil, err
	}
	if location == nil || location.ProfessionalID != professionalID {
		return nil, ErrLocationNotFound
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.IsDefault != nil {
		if *req.IsDefault && !location.IsDefault {
			if err := u.locationRepo.ClearDefault(tx, professionalID); err != nil {
				u.log.Warnf("Failed to clear default location for %s: %+v", professionalID, err)
				return nil, err
			}
		}
		location.IsDefault = *req.IsDefault
	}

	if err := u.locationRepo.Update(tx, location); err != nil {
		u.log.Warnf("Failed to update location %d: %+v", id, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LocationToResponse(location), nil
}

func (u *locationUsecase) DeleteLocation(ctx context.Context, professionalID uuid.UUID, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	location, err := u.locationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find location %d: %+v", id, err)
		return err
	}
	if location == nil || location.ProfessionalID != professionalID {
		return ErrLocationNotFound
	}

	if err := u.locationRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete location %d: %+v", id, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *locationUsecase) CreatePrivatePatient(ctx context.Context, professionalID uuid.UUID, req *dto.CreatePrivatePatientRequest) (*dto.PrivatePatientResponse, error) {
	db := u.db.WithContext(ctx)

	professional, err := u.professionalRepo.FindByUserID(db, professionalID)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", professionalID, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	patient := &entity.PrivatePatient{
		ProfessionalID: professionalID,
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
	}

	if err := u.privateRepo.Create(db, patient); err != nil {
		u.log.Warnf("Failed to create private patient: %+v", err)
		return nil, err
	}

	return converter.PrivatePatientToResponse(patient), nil
}

func (u *locationUsecase) ListPrivatePatients(ctx context.Context, professionalID uuid.UUID) (*dto.PrivatePatientListResponse, error) {
	patients, err := u.privateRepo.FindByProfessionalID(u.db.WithContext(ctx), professionalID)
	if err != nil {
		u.log.Warnf("Failed to list private patients for %s: %+v", professionalID, err)
		return nil, err
	}
	return &dto.PrivatePatientListResponse{
		Patients: converter.PrivatePatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *locationUsecase) DeletePrivatePatient(ctx context.Context, professionalID uuid.UUID, id uuid.UUID) error {
	db := u.db.WithContext(ctx)

	patient, err := u.privateRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find private patient %s: %+v", id, err)
		return err
	}
	if patient == nil || patient.ProfessionalID != professionalID {
		return ErrPrivatePatientNotFound
	}

	if err := u.privateRepo.Delete(db, id); err != nil {
		u.log.Warnf("Failed to delete private patient %s: %+v", id, err)
		return err
	}

	return nil
}
