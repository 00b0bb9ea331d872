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

type ProfessionalHandler struct {
	professionalUsecase usecase.ProfessionalUsecase
	validator           *validator.CustomValidator
}

func NewProfessionalHandler(
	professionalUsecase usecase.ProfessionalUsecase,
	validator *validator.CustomValidator,
) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionalUsecase: professionalUsecase,
		validator:           validator,
	}
}

func (h *ProfessionalHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	professional, err := h.professionalUsecase.Create(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already registered")
		case usecase.ErrPercentageOutOfRange:
			response.Error(w, http.StatusBadRequest, "Percentage must be between 0 and 100", nil)
		default:
			response.InternalServerError(w, "Failed to create professional")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Professional created", professional)
}

func (h *ProfessionalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional id", nil)
		return
	}

	professional, err := h.professionalUsecase.Get(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		default:
			response.InternalServerError(w, "Failed to get professional")
		}
		return
	}

	response.Success(w, http.StatusOK, "Professional retrieved", professional)
}

func (h *ProfessionalHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.professionalUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list professionals")
		return
	}
	response.Success(w, http.StatusOK, "Professionals retrieved", professionals)
}

func (h *ProfessionalHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid professional id", nil)
		return
	}

	var req dto.UpdateProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	professional, err := h.professionalUsecase.Update(r.Context(), userID, &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrPercentageOutOfRange:
			response.Error(w, http.StatusBadRequest, "Percentage must be between 0 and 100", nil)
		default:
			response.InternalServerError(w, "Failed to update professional")
		}
		return
	}

	response.Success(w, http.StatusOK, "Professional updated", professional)
}
