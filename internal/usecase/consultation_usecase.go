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
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrPatientNotFound      = errors.New("patient not found for the given kind")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrLocationNotFound     = errors.New("attendance location not found")
	ErrValueNegative        = errors.New("consultation value must not be negative")
)

type ConsultationUsecase interface {
	Create(ctx context.Context, req *dto.CreateConsultationRequest, actorID uuid.UUID) (*dto.ConsultationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ConsultationResponse, error)
	// List returns the consultations with date in [start, end), optionally
	// scoped to one professional.
	List(ctx context.Context, start, end time.Time, professionalID *uuid.UUID) (*dto.ConsultationListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateConsultationRequest, actorID uuid.UUID) (*dto.ConsultationResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	// RevenueReport aggregates [start, end) with the per-row convenio
	// split applied.
	RevenueReport(ctx context.Context, start, end time.Time) (*dto.RevenueReportResponse, error)
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	professionalRepo repository.ProfessionalRepository
	serviceRepo      repository.ServiceRepository
	locationRepo     repository.AttendanceLocationRepository
	memberRepo       repository.MemberRepository
	dependentRepo    repository.DependentRepository
	privateRepo      repository.PrivatePatientRepository
	auditService     service.AuditService
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	professionalRepo repository.ProfessionalRepository,
	serviceRepo repository.ServiceRepository,
	locationRepo repository.AttendanceLocationRepository,
	memberRepo repository.MemberRepository,
	dependentRepo repository.DependentRepository,
	privateRepo repository.PrivatePatientRepository,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		professionalRepo: professionalRepo,
		serviceRepo:      serviceRepo,
		locationRepo:     locationRepo,
		memberRepo:       memberRepo,
		dependentRepo:    dependentRepo,
		privateRepo:      privateRepo,
		auditService:     auditService,
	}
}

func (u *consultationUsecase) Create(ctx context.Context, req *dto.CreateConsultationRequest, actorID uuid.UUID) (*dto.ConsultationResponse, error) {
	if req.Value.IsNegative() {
		return nil, ErrValueNegative
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

	svc, err := u.serviceRepo.FindByID(tx, req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", req.ServiceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if err := u.checkLocation(tx, req.LocationID, req.ProfessionalID); err != nil {
		return nil, err
	}

	kind := entity.PatientKind(req.PatientKind)
	if err := u.checkPatient(tx, kind, req.PatientID, req.ProfessionalID); err != nil {
		return nil, err
	}

	status := entity.ConsultationStatusScheduled
	if req.Status != "" {
		status = entity.ConsultationStatus(req.Status)
	}

	consultation := &entity.Consultation{
		ProfessionalID: req.ProfessionalID,
		PatientKind:    kind,
		PatientID:      req.PatientID,
		ServiceID:      req.ServiceID,
		LocationID:     req.LocationID,
		Value:          req.Value,
		Date:           req.Date,
		Status:         status,
		Notes:          req.Notes,
	}

	if err := u.consultationRepo.Create(tx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &actorID, "consultation.create", "consultation", consultation.ID.String(), consultation)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.Get(ctx, consultation.ID)
}

func (u *consultationUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ConsultationResponse, error) {
	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", id, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) List(ctx context.Context, start, end time.Time, professionalID *uuid.UUID) (*dto.ConsultationListResponse, error) {
	consultations, err := u.consultationRepo.FindByPeriod(u.db.WithContext(ctx), start, end, professionalID)
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, err
	}
	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}, nil
}

func (u *consultationUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateConsultationRequest, actorID uuid.UUID) (*dto.ConsultationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.consultationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", id, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}

	old := *consultation

	if req.ProfessionalID != nil {
		professional, err := u.professionalRepo.FindByUserID(tx, *req.ProfessionalID)
		if err != nil {
			return nil, err
		}
		if professional == nil {
			return nil, ErrProfessionalNotFound
		}
		consultation.ProfessionalID = *req.ProfessionalID
	}

	// The patient kind is frozen at creation; only the referent within
	// the same kind may be swapped.
	if req.PatientID != nil && *req.PatientID != consultation.PatientID {
		if err := u.checkPatient(tx, consultation.PatientKind, *req.PatientID, consultation.ProfessionalID); err != nil {
			return nil, err
		}
		consultation.PatientID = *req.PatientID
	}

	if req.ServiceID != nil {
		svc, err := u.serviceRepo.FindByID(tx, *req.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}
		consultation.ServiceID = *req.ServiceID
	}
	if req.LocationID != nil {
		if err := u.checkLocation(tx, req.LocationID, consultation.ProfessionalID); err != nil {
			return nil, err
		}
		consultation.LocationID = req.LocationID
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, ErrValueNegative
		}
		consultation.Value = *req.Value
	}
	if req.Date != nil {
		consultation.Date = *req.Date
	}
	if req.Status != nil {
		consultation.Status = entity.ConsultationStatus(*req.Status)
	}
	if req.Notes != nil {
		consultation.Notes = *req.Notes
	}

	if err := u.consultationRepo.Update(tx, consultation); err != nil {
		u.log.Warnf("Failed to update consultation %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, "consultation.update", "consultation", id.String(), old, consultation)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.Get(ctx, id)
}

func (u *consultationUsecase) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.consultationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", id, err)
		return err
	}
	if consultation == nil {
		return ErrConsultationNotFound
	}

	if err := u.consultationRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete consultation %s: %+v", id, err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &actorID, "consultation.delete", "consultation", id.String(), consultation)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *consultationUsecase) RevenueReport(ctx context.Context, start, end time.Time) (*dto.RevenueReportResponse, error) {
	consultations, err := u.consultationRepo.FindForRevenue(u.db.WithContext(ctx), start, end)
	if err != nil {
		u.log.Warnf("Failed to load consultations for revenue report: %+v", err)
		return nil, err
	}
	return buildRevenueReport(consultations), nil
}

// checkPatient verifies that the referent exists for its kind. Private
// patients must also belong to the attending professional.
func (u *consultationUsecase) checkPatient(db *gorm.DB, kind entity.PatientKind, patientID, professionalID uuid.UUID) error {
	switch kind {
	case entity.PatientKindMember:
		member, err := u.memberRepo.FindByUserID(db, patientID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrPatientNotFound
		}
	case entity.PatientKindDependent:
		dependent, err := u.dependentRepo.FindByID(db, patientID)
		if err != nil {
			return err
		}
		if dependent == nil {
			return ErrPatientNotFound
		}
	case entity.PatientKindPrivate:
		patient, err := u.privateRepo.FindByID(db, patientID)
		if err != nil {
			return err
		}
		if patient == nil || patient.ProfessionalID != professionalID {
			return ErrPatientNotFound
		}
	default:
		return ErrPatientNotFound
	}
	return nil
}

func (u *consultationUsecase) checkLocation(db *gorm.DB, locationID *int, professionalID uuid.UUID) error {
	if locationID == nil {
		return nil
	}
	location, err := u.locationRepo.FindByID(db, *locationID)
	if err != nil {
		return err
	}
	if location == nil || location.ProfessionalID != professionalID {
		return ErrLocationNotFound
	}
	return nil
}
