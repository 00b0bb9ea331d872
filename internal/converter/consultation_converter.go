package converter

import (
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation to its DTO. The
// Professional.User and Service relations fill the display names when
// preloaded. PatientType labels the billing side of the patient kind.
func ConsultationToResponse(consultation *entity.Consultation) *dto.ConsultationResponse {
	if consultation == nil {
		return nil
	}

	patientType := "particular"
	if consultation.IsConvenio() {
		patientType = "convenio"
	}

	return &dto.ConsultationResponse{
		ID:               consultation.ID,
		ProfessionalID:   consultation.ProfessionalID,
		ProfessionalName: consultation.Professional.User.FullName,
		PatientKind:      string(consultation.PatientKind),
		PatientID:        consultation.PatientID,
		PatientType:      patientType,
		ServiceID:        consultation.ServiceID,
		ServiceName:      consultation.Service.Name,
		LocationID:       consultation.LocationID,
		Value:            consultation.Value,
		Date:             consultation.Date,
		Status:           string(consultation.Status),
		Notes:            consultation.Notes,
		CreatedAt:        consultation.CreatedAt,
		UpdatedAt:        consultation.UpdatedAt,
	}
}

func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}
