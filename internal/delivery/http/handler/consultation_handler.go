package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/delivery/http/middleware"
	"convenio-backend/internal/domain/entity"
	"convenio-backend/internal/usecase"
	"convenio-backend/pkg/response"
	"convenio-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

var (
	errInvalidStartDate   = errors.New("Invalid start_date, expected YYYY-MM-DD")
	errInvalidEndDate     = errors.New("Invalid end_date, expected YYYY-MM-DD")
	errDateWindowInverted = errors.New("end_date must not be before start_date")
)

func NewConsultationHandler(
	consultationUsecase usecase.ConsultationUsecase,
	validator *validator.CustomValidator,
) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	// Professionals may only record their own consultations.
	if !isAdmin(r) && req.ProfessionalID != actorID {
		response.Forbidden(w, "You don't have permission to access this resource")
		return
	}

	consultation, err := h.consultationUsecase.Create(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrLocationNotFound:
			response.NotFound(w, "Attendance location not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrValueNegative:
			response.Error(w, http.StatusBadRequest, "Value must not be negative", nil)
		default:
			response.InternalServerError(w, "Failed to create consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation created", consultation)
}

func (h *ConsultationHandler) Get(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation id", nil)
		return
	}

	consultation, err := h.consultationUsecase.Get(r.Context(), consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		default:
			response.InternalServerError(w, "Failed to get consultation")
		}
		return
	}

	if !isAdmin(r) {
		actorID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok || consultation.ProfessionalID != actorID {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}
	}

	response.Success(w, http.StatusOK, "Consultation retrieved", consultation)
}

// List returns consultations within the start_date/end_date window.
// Professionals see only their own; admins see everything, optionally
// filtered by professional_id.
func (h *ConsultationHandler) List(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateWindow(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var professionalID *uuid.UUID
	if isAdmin(r) {
		if raw := r.URL.Query().Get("professional_id"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "Invalid professional_id", nil)
				return
			}
			professionalID = &parsed
		}
	} else {
		actorID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Invalid token")
			return
		}
		professionalID = &actorID
	}

	consultations, err := h.consultationUsecase.List(r.Context(), start, end, professionalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved", consultations)
}

func (h *ConsultationHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation id", nil)
		return
	}

	var req dto.UpdateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if !isAdmin(r) {
		if !h.ownsConsultation(w, r, consultationID, actorID) {
			return
		}
		// Professionals cannot reassign rows to someone else.
		if req.ProfessionalID != nil && *req.ProfessionalID != actorID {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}
	}

	consultation, err := h.consultationUsecase.Update(r.Context(), consultationID, &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrLocationNotFound:
			response.NotFound(w, "Attendance location not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrValueNegative:
			response.Error(w, http.StatusBadRequest, "Value must not be negative", nil)
		default:
			response.InternalServerError(w, "Failed to update consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation updated", consultation)
}

func (h *ConsultationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation id", nil)
		return
	}

	if !isAdmin(r) && !h.ownsConsultation(w, r, consultationID, actorID) {
		return
	}

	if err := h.consultationUsecase.Delete(r.Context(), consultationID, actorID); err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		default:
			response.InternalServerError(w, "Failed to delete consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation deleted", nil)
}

// RevenueReport aggregates completed consultations within the
// start_date/end_date window. Admin only, enforced by the router.
func (h *ConsultationHandler) RevenueReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateWindow(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	report, err := h.consultationUsecase.RevenueReport(r.Context(), start, end)
	if err != nil {
		response.InternalServerError(w, "Failed to build revenue report")
		return
	}

	response.Success(w, http.StatusOK, "Revenue report generated", report)
}

// ownsConsultation loads the row and checks the professional. A
// not-found reports true so the main path produces the 404; an
// ownership failure writes the 403 and reports false.
func (h *ConsultationHandler) ownsConsultation(w http.ResponseWriter, r *http.Request, consultationID, actorID uuid.UUID) bool {
	consultation, err := h.consultationUsecase.Get(r.Context(), consultationID)
	if err != nil {
		if err == usecase.ErrConsultationNotFound {
			return true
		}
		response.InternalServerError(w, "Failed to get consultation")
		return false
	}
	if consultation.ProfessionalID != actorID {
		response.Forbidden(w, "You don't have permission to access this resource")
		return false
	}
	return true
}

func isAdmin(r *http.Request) bool {
	roles, _ := middleware.GetRolesFromContext(r.Context())
	for _, role := range roles {
		if role == entity.RoleAdmin {
			return true
		}
	}
	return false
}

// parseDateWindow reads start_date and end_date (YYYY-MM-DD) from the
// query. end_date is inclusive, so the window extends to the end of
// that day. Missing values default to the current month.
func parseDateWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidStartDate
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidEndDate
		}
		end = parsed.AddDate(0, 0, 1)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errDateWindowInverted
	}
	return start, end, nil
}
