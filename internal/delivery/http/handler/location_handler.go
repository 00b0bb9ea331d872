package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/delivery/http/middleware"
	"convenio-backend/internal/usecase"
	"convenio-backend/pkg/response"
	"convenio-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// LocationHandler serves the professional's own attendance locations
// and private patient roster. Everything is scoped to the
// authenticated professional.
type LocationHandler struct {
	locationUsecase usecase.LocationUsecase
	validator       *validator.CustomValidator
}

func NewLocationHandler(locationUsecase usecase.LocationUsecase, validator *validator.CustomValidator) *LocationHandler {
	return &LocationHandler{
		locationUsecase: locationUsecase,
		validator:       validator,
	}
}

func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	location, err := h.locationUsecase.CreateLocation(r.Context(), professionalID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		default:
			response.InternalServerError(w, "Failed to create location")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Location created", location)
}

func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	locations, err := h.locationUsecase.ListLocations(r.Context(), professionalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list locations")
		return
	}

	response.Success(w, http.StatusOK, "Locations retrieved", locations)
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	locationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid location id", nil)
		return
	}

	var req dto.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	location, err := h.locationUsecase.UpdateLocation(r.Context(), professionalID, locationID, &req)
	if err != nil {
		switch err {
		case usecase.ErrLocationNotFound:
			response.NotFound(w, "Location not found")
		default:
			response.InternalServerError(w, "Failed to update location")
		}
		return
	}

	response.Success(w, http.StatusOK, "Location updated", location)
}

func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	locationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid location id", nil)
		return
	}

	if err := h.locationUsecase.DeleteLocation(r.Context(), professionalID, locationID); err != nil {
		switch err {
		case usecase.ErrLocationNotFound:
			response.NotFound(w, "Location not found")
		default:
			response.InternalServerError(w, "Failed to delete location")
		}
		return
	}

	response.Success(w, http.StatusOK, "Location deleted", nil)
}

func (h *LocationHandler) CreatePrivatePatient(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePrivatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.locationUsecase.CreatePrivatePatient(r.Context(), professionalID, &req)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		default:
			response.InternalServerError(w, "Failed to create private patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Private patient created", patient)
}

func (h *LocationHandler) ListPrivatePatients(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patients, err := h.locationUsecase.ListPrivatePatients(r.Context(), professionalID)
	if err != nil {
		response.InternalServerError(w, "Failed to list private patients")
		return
	}

	response.Success(w, http.StatusOK, "Private patients retrieved", patients)
}

func (h *LocationHandler) DeletePrivatePatient(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	if err := h.locationUsecase.DeletePrivatePatient(r.Context(), professionalID, patientID); err != nil {
		switch err {
		case usecase.ErrPrivatePatientNotFound:
			response.NotFound(w, "Private patient not found")
		default:
			response.InternalServerError(w, "Failed to delete private patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Private patient deleted", nil)
}
