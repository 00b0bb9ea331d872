package converter

import (
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
)

func CommissionToResponse(commission *entity.Commission) *dto.CommissionResponse {
	if commission == nil {
		return nil
	}

	return &dto.CommissionResponse{
		ID:               commission.ID,
		AffiliateID:      commission.AffiliateID,
		SourceUserID:     commission.SourceUserID,
		SourceUserName:   commission.SourceUser.FullName,
		Amount:           commission.Amount,
		Status:           string(commission.Status),
		CreatedAt:        commission.CreatedAt,
		PaidAt:           commission.PaidAt,
		PaidBy:           commission.PaidBy,
		PaidMethod:       commission.PaidMethod,
		ReceiptReference: commission.ReceiptReference,
	}
}

func CommissionsToResponses(commissions []entity.Commission) []dto.CommissionResponse {
	responses := make([]dto.CommissionResponse, len(commissions))
	for i := range commissions {
		responses[i] = *CommissionToResponse(&commissions[i])
	}
	return responses
}
