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

	"github.com/gorilla/mux"
)

type CouponHandler struct {
	couponUsecase usecase.CouponUsecase
	validator     *validator.CustomValidator
}

func NewCouponHandler(couponUsecase usecase.CouponUsecase, validator *validator.CustomValidator) *CouponHandler {
	return &CouponHandler{
		couponUsecase: couponUsecase,
		validator:     validator,
	}
}

func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	coupon, err := h.couponUsecase.Create(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrCouponCodeExists:
			response.Conflict(w, "Coupon code already exists")
		case usecase.ErrCouponPriceAboveBase:
			response.Error(w, http.StatusBadRequest, "Final price exceeds the base price", nil)
		case usecase.ErrCouponPriceNegative:
			response.Error(w, http.StatusBadRequest, "Final price must not be negative", nil)
		case usecase.ErrCouponInvalid:
			response.Error(w, http.StatusBadRequest, "Invalid coupon target", nil)
		default:
			response.InternalServerError(w, "Failed to create coupon")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Coupon created", coupon)
}

func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid coupon id", nil)
		return
	}

	coupon, err := h.couponUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrCouponNotFound:
			response.NotFound(w, "Coupon not found")
		default:
			response.InternalServerError(w, "Failed to get coupon")
		}
		return
	}

	response.Success(w, http.StatusOK, "Coupon retrieved", coupon)
}

func (h *CouponHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list coupons")
		return
	}
	response.Success(w, http.StatusOK, "Coupons retrieved", coupons)
}

func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid coupon id", nil)
		return
	}

	var req dto.UpdateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	coupon, err := h.couponUsecase.Update(r.Context(), id, &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrCouponNotFound:
			response.NotFound(w, "Coupon not found")
		case usecase.ErrCouponPriceAboveBase:
			response.Error(w, http.StatusBadRequest, "Final price exceeds the base price", nil)
		case usecase.ErrCouponPriceNegative:
			response.Error(w, http.StatusBadRequest, "Final price must not be negative", nil)
		default:
			response.InternalServerError(w, "Failed to update coupon")
		}
		return
	}

	response.Success(w, http.StatusOK, "Coupon updated", coupon)
}

func (h *CouponHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid coupon id", nil)
		return
	}

	coupon, err := h.couponUsecase.Toggle(r.Context(), id, actorID)
	if err != nil {
		switch err {
		case usecase.ErrCouponNotFound:
			response.NotFound(w, "Coupon not found")
		default:
			response.InternalServerError(w, "Failed to toggle coupon")
		}
		return
	}

	response.Success(w, http.StatusOK, "Coupon toggled", coupon)
}

func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid coupon id", nil)
		return
	}

	if err := h.couponUsecase.Delete(r.Context(), id, actorID); err != nil {
		switch err {
		case usecase.ErrCouponNotFound:
			response.NotFound(w, "Coupon not found")
		default:
			response.InternalServerError(w, "Failed to delete coupon")
		}
		return
	}

	response.Success(w, http.StatusOK, "Coupon deleted", nil)
}

// Resolve prices a coupon code for a target at the current instant.
func (h *CouponHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	resolved, err := h.couponUsecase.Resolve(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCouponInvalid:
			response.Error(w, http.StatusBadRequest, "Coupon is invalid for this purchase", nil)
		default:
			response.InternalServerError(w, "Failed to resolve coupon")
		}
		return
	}

	response.Success(w, http.StatusOK, "Coupon resolved", resolved)
}
