package converter

import (
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
)

// AffiliateToResponse converts an AffiliateProfile to its DTO. The User
// relation must be preloaded for the full name.
func AffiliateToResponse(affiliate *entity.AffiliateProfile) *dto.AffiliateResponse {
	if affiliate == nil {
		return nil
	}

	return &dto.AffiliateResponse{
		UserID:           affiliate.UserID,
		FullName:         affiliate.User.FullName,
		ReferralCode:     affiliate.ReferralCode,
		Status:           string(affiliate.Status),
		CommissionAmount: affiliate.CommissionAmount,
		PixKey:           affiliate.PixKey,
		CreatedAt:        affiliate.CreatedAt,
	}
}

func AffiliatesToResponses(affiliates []entity.AffiliateProfile) []dto.AffiliateResponse {
	responses := make([]dto.AffiliateResponse, len(affiliates))
	for i := range affiliates {
		responses[i] = *AffiliateToResponse(&affiliates[i])
	}
	return responses
}

// ReferredUserToResponse flattens a ReferredUser row; the User relation
// with its member profile must be preloaded.
func ReferredUserToResponse(referred *entity.ReferredUser) *dto.ReferredUserResponse {
	if referred == nil {
		return nil
	}

	response := &dto.ReferredUserResponse{
		UserID:     referred.UserID,
		FullName:   referred.User.FullName,
		ReferredAt: referred.CreatedAt,
	}
	if referred.User.MemberProfile != nil {
		response.SubscriptionStatus = string(referred.User.MemberProfile.SubscriptionStatus)
	}
	return response
}

func ReferredUsersToResponses(referred []entity.ReferredUser) []dto.ReferredUserResponse {
	responses := make([]dto.ReferredUserResponse, len(referred))
	for i := range referred {
		responses[i] = *ReferredUserToResponse(&referred[i])
	}
	return responses
}
