package converter

import (
	"time"

	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// SchedulingAccessToResponse derives the grant's state at now. A nil
// grant maps to the absent state for the given professional.
func SchedulingAccessToResponse(professionalID uuid.UUID, grant *entity.SchedulingAccessGrant, now time.Time) *dto.SchedulingAccessResponse {
	state := grant.StateAt(now)

	response := &dto.SchedulingAccessResponse{
		ProfessionalID: professionalID,
		State:          string(state),
		HasAccess:      state == entity.SchedulingAccessActive,
	}
	if grant != nil {
		response.ExpiresAt = grant.ExpiresAt
		response.GrantedBy = grant.GrantedBy
		response.GrantedAt = grant.GrantedAt
		response.Reason = grant.Reason
	}
	return response
}
