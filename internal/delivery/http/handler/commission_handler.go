package handler

import (
	"net/http"
	"time"

	"convenio-backend/internal/usecase"
	"convenio-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CommissionHandler struct {
	commissionUsecase usecase.CommissionUsecase
}

func NewCommissionHandler(commissionUsecase usecase.CommissionUsecase) *CommissionHandler {
	return &CommissionHandler{commissionUsecase: commissionUsecase}
}

func (h *CommissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	commissionID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid commission id", nil)
		return
	}

	commission, err := h.commissionUsecase.Get(r.Context(), commissionID)
	if err != nil {
		switch err {
		case usecase.ErrCommissionNotFound:
			response.NotFound(w, "Commission not found")
		default:
			response.InternalServerError(w, "Failed to get commission")
		}
		return
	}

	response.Success(w, http.StatusOK, "Commission retrieved", commission)
}

// ListByPeriod lists all commissions for one calendar month. The
// period query parameter takes YYYY-MM and defaults to the current
// month.
func (h *CommissionHandler) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	ref := time.Now().UTC()
	if period := r.URL.Query().Get("period"); period != "" {
		parsed, err := time.Parse("2006-01", period)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid period, expected YYYY-MM", nil)
			return
		}
		ref = parsed
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	commissions, err := h.commissionUsecase.ListByPeriod(r.Context(), ref, status)
	if err != nil {
		response.InternalServerError(w, "Failed to list commissions")
		return
	}

	response.Success(w, http.StatusOK, "Commissions retrieved", commissions)
}

func (h *CommissionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	affiliateID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid affiliate id", nil)
		return
	}

	summary, err := h.commissionUsecase.Summary(r.Context(), affiliateID)
	if err != nil {
		response.InternalServerError(w, "Failed to summarize commissions")
		return
	}

	response.Success(w, http.StatusOK, "Commission summary retrieved", summary)
}
