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

type AffiliateHandler struct {
	affiliateUsecase  usecase.AffiliateUsecase
	commissionUsecase usecase.CommissionUsecase
	validator         *validator.CustomValidator
}

func NewAffiliateHandler(
	affiliateUsecase usecase.AffiliateUsecase,
	commissionUsecase usecase.CommissionUsecase,
	validator *validator.CustomValidator,
) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateUsecase:  affiliateUsecase,
		commissionUsecase: commissionUsecase,
		validator:         validator,
	}
}

func (h *AffiliateHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateAffiliateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	affiliate, err := h.affiliateUsecase.Create(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrAffiliateExists:
			response.Conflict(w, "User is already an affiliate")
		case usecase.ErrReferralCodeExists:
			response.Conflict(w, "Referral code already in use")
		default:
			response.InternalServerError(w, "Failed to create affiliate")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Affiliate created", affiliate)
}

func (h *AffiliateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid affiliate id", nil)
		return
	}

	affiliate, err := h.affiliateUsecase.Get(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrAffiliateNotFound:
			response.NotFound(w, "Affiliate not found")
		default:
			response.InternalServerError(w, "Failed to get affiliate")
		}
		return
	}

	response.Success(w, http.StatusOK, "Affiliate retrieved", affiliate)
}

func (h *AffiliateHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	affiliates, err := h.affiliateUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list affiliates")
		return
	}
	response.Success(w, http.StatusOK, "Affiliates retrieved", affiliates)
}

func (h *AffiliateHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid affiliate id", nil)
		return
	}

	var req dto.UpdateAffiliateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	affiliate, err := h.affiliateUsecase.Update(r.Context(), userID, &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrAffiliateNotFound:
			response.NotFound(w, "Affiliate not found")
		default:
			response.InternalServerError(w, "Failed to update affiliate")
		}
		return
	}

	response.Success(w, http.StatusOK, "Affiliate updated", affiliate)
}

// RecordClick is the public tracking endpoint. It always answers 200 so
// callers cannot probe referral codes.
func (h *AffiliateHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.affiliateUsecase.RecordClick(r.Context(), &req); err != nil {
		response.InternalServerError(w, "Failed to record click")
		return
	}

	response.Success(w, http.StatusOK, "Click recorded", nil)
}

// Dashboard returns the authenticated affiliate's self-view.
func (h *AffiliateHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.affiliateUsecase.Dashboard(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrAffiliateNotFound:
			response.NotFound(w, "Affiliate not found")
		default:
			response.InternalServerError(w, "Failed to load dashboard")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved", dashboard)
}

// ListCommissions lists an affiliate's commission ledger. Affiliates
// may only read their own; admins read anyone's.
func (h *AffiliateHandler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	affiliateID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid affiliate id", nil)
		return
	}

	if !h.canReadAffiliate(r, affiliateID) {
		response.Forbidden(w, "You don't have permission to access this resource")
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	commissions, err := h.commissionUsecase.ListByAffiliate(r.Context(), affiliateID, status)
	if err != nil {
		response.InternalServerError(w, "Failed to list commissions")
		return
	}

	response.Success(w, http.StatusOK, "Commissions retrieved", commissions)
}

// PayCommission transitions one commission to paid. A repeated call
// answers 409.
func (h *AffiliateHandler) PayCommission(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	commissionID, err := uuid.Parse(mux.Vars(r)["cid"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid commission id", nil)
		return
	}

	var req dto.PayCommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	commission, err := h.commissionUsecase.Pay(r.Context(), commissionID, &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrCommissionNotFound:
			response.NotFound(w, "Commission not found")
		case usecase.ErrCommissionAlreadyPaid:
			response.Conflict(w, "Commission is already paid")
		default:
			response.InternalServerError(w, "Failed to pay commission")
		}
		return
	}

	response.Success(w, http.StatusOK, "Commission paid", commission)
}

func (h *AffiliateHandler) canReadAffiliate(r *http.Request, affiliateID uuid.UUID) bool {
	roles, _ := middleware.GetRolesFromContext(r.Context())
	for _, role := range roles {
		if role == entity.RoleAdmin {
			return true
		}
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	return ok && userID == affiliateID
}
