package converter

import (
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
)

// MemberToResponse converts a MemberProfile to its DTO. The User
// relation must be preloaded; dependents are included when loaded.
func MemberToResponse(member *entity.MemberProfile) *dto.MemberResponse {
	if member == nil {
		return nil
	}

	response := &dto.MemberResponse{
		UserID:                member.UserID,
		FullName:              member.User.FullName,
		Email:                 member.User.Email,
		Document:              member.Document,
		PhoneNumber:           member.PhoneNumber,
		SubscriptionStatus:    string(member.SubscriptionStatus),
		SubscriptionExpiresAt: member.SubscriptionExpiresAt,
		CreatedAt:             member.CreatedAt,
	}

	for i := range member.Dependents {
		response.Dependents = append(response.Dependents, *DependentToResponse(&member.Dependents[i]))
	}

	return response
}

func MembersToResponses(members []entity.MemberProfile) []dto.MemberResponse {
	responses := make([]dto.MemberResponse, len(members))
	for i := range members {
		responses[i] = *MemberToResponse(&members[i])
	}
	return responses
}

func DependentToResponse(dependent *entity.Dependent) *dto.DependentResponse {
	if dependent == nil {
		return nil
	}

	return &dto.DependentResponse{
		ID:                    dependent.ID,
		MemberID:              dependent.MemberID,
		FullName:              dependent.FullName,
		Document:              dependent.Document,
		SubscriptionStatus:    string(dependent.SubscriptionStatus),
		SubscriptionExpiresAt: dependent.SubscriptionExpiresAt,
		CreatedAt:             dependent.CreatedAt,
	}
}

func DependentsToResponses(dependents []entity.Dependent) []dto.DependentResponse {
	responses := make([]dto.DependentResponse, len(dependents))
	for i := range dependents {
		responses[i] = *DependentToResponse(&dependents[i])
	}
	return responses
}
