package handler

import (
	"encoding/json"
	"net/http"

	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/delivery/http/middleware"
	"convenio-backend/internal/domain/entity"
	"convenio-backend/internal/usecase"
	"convenio-backend/pkg/response"
	"convenio-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MemberHandler struct {
	memberUsecase usecase.MemberUsecase
	validator     *validator.CustomValidator
}

func NewMemberHandler(memberUsecase usecase.MemberUsecase, validator *validator.CustomValidator) *MemberHandler {
	return &MemberHandler{
		memberUsecase: memberUsecase,
		validator:     validator,
	}
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid member id", nil)
		return
	}

	if !h.canAccessMember(r, memberID) {
		response.Forbidden(w, "You don't have permission to access this resource")
		return
	}

	member, err := h.memberUsecase.Get(r.Context(), memberID)
	if err != nil {
		switch err {
		case usecase.ErrMemberNotFound:
			response.NotFound(w, "Member not found")
		default:
			response.InternalServerError(w, "Failed to get member")
		}
		return
	}

	response.Success(w, http.StatusOK, "Member retrieved", member)
}

func (h *MemberHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list members")
		return
	}
	response.Success(w, http.StatusOK, "Members retrieved", members)
}

func (h *MemberHandler) AddDependent(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	memberID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid member id", nil)
		return
	}

	if !h.canAccessMember(r, memberID) {
		response.Forbidden(w, "You don't have permission to access this resource")
		return
	}

	var req dto.CreateDependentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dependent, err := h.memberUsecase.AddDependent(r.Context(), memberID, &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrMemberNotFound:
			response.NotFound(w, "Member not found")
		case usecase.ErrTooManyDependents:
			response.Error(w, http.StatusBadRequest, "Dependent limit reached", nil)
		default:
			response.InternalServerError(w, "Failed to add dependent")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Dependent added", dependent)
}

func (h *MemberHandler) ListDependents(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid member id", nil)
		return
	}

	if !h.canAccessMember(r, memberID) {
		response.Forbidden(w, "You don't have permission to access this resource")
		return
	}

	dependents, err := h.memberUsecase.ListDependents(r.Context(), memberID)
	if err != nil {
		switch err {
		case usecase.ErrMemberNotFound:
			response.NotFound(w, "Member not found")
		default:
			response.InternalServerError(w, "Failed to list dependents")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dependents retrieved", dependents)
}

func (h *MemberHandler) UpdateDependent(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	memberID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid member id", nil)
		return
	}
	dependentID, err := uuid.Parse(vars["dependentId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid dependent id", nil)
		return
	}

	if !h.canAccessMember(r, memberID) {
		response.Forbidden(w, "You don't have permission to access this resource")
		return
	}

	var req dto.UpdateDependentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dependent, err := h.memberUsecase.UpdateDependent(r.Context(), memberID, dependentID, &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrMemberNotFound:
			response.NotFound(w, "Member not found")
		case usecase.ErrDependentNotFound, usecase.ErrDependentNotOwned:
			response.NotFound(w, "Dependent not found")
		default:
			response.InternalServerError(w, "Failed to update dependent")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dependent updated", dependent)
}

// canAccessMember allows admins, and members acting on themselves.
func (h *MemberHandler) canAccessMember(r *http.Request, memberID uuid.UUID) bool {
	roles, _ := middleware.GetRolesFromContext(r.Context())
	for _, role := range roles {
		if role == entity.RoleAdmin {
			return true
		}
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	return ok && userID == memberID
}
