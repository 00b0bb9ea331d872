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

type SubscriptionHandler struct {
	subscriptionUsecase usecase.SubscriptionUsecase
	paymentUsecase      usecase.PaymentUsecase
	validator           *validator.CustomValidator
}

func NewSubscriptionHandler(
	subscriptionUsecase usecase.SubscriptionUsecase,
	paymentUsecase usecase.PaymentUsecase,
	validator *validator.CustomValidator,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUsecase: subscriptionUsecase,
		paymentUsecase:      paymentUsecase,
		validator:           validator,
	}
}

// Activate is the admin manual activation path.
func (h *SubscriptionHandler) Activate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ActivateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	subscription, err := h.subscriptionUsecase.Activate(r.Context(), &req, actorID)
	if err != nil {
		switch err {
		case usecase.ErrMemberNotFound:
			response.NotFound(w, "Member not found")
		case usecase.ErrExpiryInPast:
			response.Error(w, http.StatusBadRequest, "Expiry date must be in the future", nil)
		default:
			response.InternalServerError(w, "Failed to activate subscription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Subscription activated", subscription)
}

// PaymentConfirmed is the payment-gateway confirmation callback.
// Replays with a seen payment reference return 200 with current state.
func (h *SubscriptionHandler) PaymentConfirmed(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentConfirmedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	subscription, err := h.paymentUsecase.ConfirmPayment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPaymentMismatch:
			response.Conflict(w, "Amount paid does not match the expected price")
		case usecase.ErrCouponInvalid:
			response.Error(w, http.StatusBadRequest, "Coupon is invalid for this purchase", nil)
		case usecase.ErrMemberNotFound:
			response.NotFound(w, "Member not found")
		case usecase.ErrDependentNotFound:
			response.NotFound(w, "Dependent not found")
		default:
			response.InternalServerError(w, "Failed to confirm payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment confirmed", subscription)
}

// Get returns a member's subscription state. Members may only read
// their own; admins read anyone's.
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(mux.Vars(r)["memberId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid member id", nil)
		return
	}

	if !h.canReadMember(r, memberID) {
		response.Forbidden(w, "You don't have permission to access this resource")
		return
	}

	subscription, err := h.subscriptionUsecase.Get(r.Context(), memberID)
	if err != nil {
		switch err {
		case usecase.ErrMemberNotFound:
			response.NotFound(w, "Member not found")
		default:
			response.InternalServerError(w, "Failed to get subscription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Subscription retrieved", subscription)
}

func (h *SubscriptionHandler) canReadMember(r *http.Request, memberID uuid.UUID) bool {
	roles, _ := middleware.GetRolesFromContext(r.Context())
	for _, role := range roles {
		if role == entity.RoleAdmin {
			return true
		}
	}
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	return ok && userID == memberID
}
