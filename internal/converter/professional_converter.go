package converter

import (
	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"
)

// ProfessionalToResponse converts a ProfessionalProfile to its DTO.
// The User relation must be preloaded.
func ProfessionalToResponse(professional *entity.ProfessionalProfile) *dto.ProfessionalResponse {
	if professional == nil {
		return nil
	}

	return &dto.ProfessionalResponse{
		UserID:      professional.UserID,
		Email:       professional.User.Email,
		FullName:    professional.User.FullName,
		Category:    professional.Category,
		PhoneNumber: professional.PhoneNumber,
		Percentage:  professional.Percentage,
		CreatedAt:   professional.CreatedAt,
	}
}

func ProfessionalsToResponses(professionals []entity.ProfessionalProfile) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(professionals))
	for i := range professionals {
		responses[i] = *ProfessionalToResponse(&professionals[i])
	}
	return responses
}

func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	return &dto.ServiceResponse{
		ID:        service.ID,
		Name:      service.Name,
		BasePrice: service.BasePrice,
		CreatedAt: service.CreatedAt,
	}
}

func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = *ServiceToResponse(&services[i])
	}
	return responses
}

func LocationToResponse(location *entity.AttendanceLocation) *dto.LocationResponse {
	if location == nil {
		return nil
	}

	return &dto.LocationResponse{
		ID:             location.ID,
		ProfessionalID: location.ProfessionalID,
		Name:           location.Name,
		Address:        location.Address,
		IsDefault:      location.IsDefault,
	}
}

func LocationsToResponses(locations []entity.AttendanceLocation) []dto.LocationResponse {
	responses := make([]dto.LocationResponse, len(locations))
	for i := range locations {
		responses[i] = *LocationToResponse(&locations[i])
	}
	return responses
}

func PrivatePatientToResponse(patient *entity.PrivatePatient) *dto.PrivatePatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PrivatePatientResponse{
		ID:             patient.ID,
		ProfessionalID: patient.ProfessionalID,
		FullName:       patient.FullName,
		PhoneNumber:    patient.PhoneNumber,
		CreatedAt:      patient.CreatedAt,
	}
}

func PrivatePatientsToResponses(patients []entity.PrivatePatient) []dto.PrivatePatientResponse {
	responses := make([]dto.PrivatePatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PrivatePatientToResponse(&patients[i])
	}
	return responses
}
