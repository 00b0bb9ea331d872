package handler

import (
	"encoding/json"
	"net/http"

	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/delivery/http/middleware"
	"convenio-backend/internal/usecase"
	"convenio-backend/pkg/response"
	"convenio-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SchedulingAccessHandler struct {
	schedulingUsecase usecase.SchedulingAccessUsecase
	validator         *validator.CustomValidator
}

func NewSchedulingAccessHandler(
	schedulingUsecase usecase.SchedulingAccessUsecase,
	validator *validator.CustomValidator,
) *SchedulingAccessHandler {
	return &SchedulingAccessHandler{
		schedulingUsecase: schedulingUsecase,
		validator:         validator,
	}
}

func (h *SchedulingAccessHandler) Grant(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.GrantSchedulingAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	grant, err := h.schedulingUsecase.Grant(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrExpiryInPast:
			response.Error(w, http.StatusBadRequest, "Expiry date must be in the future", nil)
		default:
			response.InternalServerError(w, "Failed to grant scheduling access")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scheduling access granted", grant)
}

func (h *SchedulingAccessHandler) Extend(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ExtendSchedulingAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	grant, err := h.schedulingUsecase.Extend(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrGrantNotFound:
			response.NotFound(w, "No active scheduling access grant")
		case usecase.ErrGrantNotExtended:
			response.Error(w, http.StatusBadRequest, "New expiry must be after the current expiry", nil)
		default:
			response.InternalServerError(w, "Failed to extend scheduling access")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scheduling access extended", grant)
}

func (h *SchedulingAccessHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.RevokeSchedulingAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	grant, err := h.schedulingUsecase.Revoke(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrGrantNotFound:
			response.NotFound(w, "No scheduling access grant for professional")
		default:
			response.InternalServerError(w, "Failed to revoke scheduling access")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scheduling access revoked", grant)
}

// Query answers the access question for one professional. Admins may
// query anyone; professionals only themselves.
func (h *SchedulingAccessHandler) Query(w http.ResponseWriter, r *http.Request) {
	professionalID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional id", nil)
		return
	}

	if !isAdmin(r) {
		actorID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok || actorID != professionalID {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}
	}

	access, err := h.schedulingUsecase.Query(r.Context(), professionalID)
	if err != nil {
		response.InternalServerError(w, "Failed to query scheduling access")
		return
	}

	response.Success(w, http.StatusOK, "Scheduling access retrieved", access)
}
