package usecase

import (
	"testing"
	"time"

	"convenio-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func consultationFor(professionalID uuid.UUID, name string, percentage, value string, kind entity.PatientKind, status entity.ConsultationStatus, serviceID int, serviceName string) entity.Consultation {
	return entity.Consultation{
		ID:             uuid.New(),
		ProfessionalID: professionalID,
		PatientKind:    kind,
		PatientID:      uuid.New(),
		ServiceID:      serviceID,
		Value:          decimal.RequireFromString(value),
		Status:         status,
		Professional: entity.ProfessionalProfile{
			UserID:     professionalID,
			Percentage: decimal.RequireFromString(percentage),
			User:       entity.User{FullName: name},
		},
		Service: entity.Service{ID: serviceID, Name: serviceName},
	}
}

func TestSplitConsultationConvenio(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		percentage   string
		professional string
		clinic       string
	}{
		{"even split", "200.00", "50.00", "100.00", "100.00"},
		{"rounds half away from zero", "100.01", "33.33", "33.33", "66.68"},
		{"repeating fraction", "100.00", "66.67", "66.67", "33.33"},
		{"midpoint rounds up", "10.01", "50.00", "5.01", "5.00"},
		{"full percentage", "150.00", "100.00", "150.00", "0.00"},
		{"zero percentage", "150.00", "0.00", "0.00", "150.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := consultationFor(uuid.New(), "Dr Test", tt.percentage, tt.value, entity.PatientKindMember, entity.ConsultationStatusCompleted, 1, "Consulta")
			professional, clinic := splitConsultation(&c)

			assert.True(t, decimal.RequireFromString(tt.professional).Equal(professional), "professional share: want %s, got %s", tt.professional, professional)
			assert.True(t, decimal.RequireFromString(tt.clinic).Equal(clinic), "clinic share: want %s, got %s", tt.clinic, clinic)
			assert.True(t, c.Value.Equal(professional.Add(clinic)), "split must reassemble the value")
		})
	}
}

func TestSplitConsultationPrivateGoesFullyToProfessional(t *testing.T) {
	c := consultationFor(uuid.New(), "Dr Test", "40.00", "250.00", entity.PatientKindPrivate, entity.ConsultationStatusCompleted, 1, "Consulta")
	professional, clinic := splitConsultation(&c)

	assert.True(t, c.Value.Equal(professional))
	assert.True(t, clinic.IsZero())
}

func TestBuildRevenueReport(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	consultations := []entity.Consultation{
		consultationFor(alice, "Alice", "50.00", "200.00", entity.PatientKindMember, entity.ConsultationStatusCompleted, 1, "Consulta Geral"),
		consultationFor(alice, "Alice", "50.00", "100.01", entity.PatientKindDependent, entity.ConsultationStatusConfirmed, 2, "Retorno"),
		consultationFor(alice, "Alice", "50.00", "300.00", entity.PatientKindPrivate, entity.ConsultationStatusCompleted, 1, "Consulta Geral"),
		consultationFor(bob, "Bob", "70.00", "100.00", entity.PatientKindMember, entity.ConsultationStatusCompleted, 1, "Consulta Geral"),
		// Neither scheduled nor cancelled rows enter the report.
		consultationFor(bob, "Bob", "70.00", "999.00", entity.PatientKindMember, entity.ConsultationStatusScheduled, 1, "Consulta Geral"),
		consultationFor(bob, "Bob", "70.00", "999.00", entity.PatientKindMember, entity.ConsultationStatusCancelled, 2, "Retorno"),
	}

	report := buildRevenueReport(consultations)

	assert.True(t, decimal.RequireFromString("700.01").Equal(report.TotalRevenue))
	assert.Len(t, report.RevenueByProfessional, 2)

	// Sorted by professional name.
	aliceLine := report.RevenueByProfessional[0]
	assert.Equal(t, "Alice", aliceLine.ProfessionalName)
	assert.Equal(t, 3, aliceLine.Count)
	assert.True(t, decimal.RequireFromString("600.01").Equal(aliceLine.Revenue))
	// 100.00 + 50.01 (convenio) + 300.00 (private).
	assert.True(t, decimal.RequireFromString("450.01").Equal(aliceLine.ProfessionalPayment))
	assert.True(t, decimal.RequireFromString("150.00").Equal(aliceLine.ClinicRevenue))
	assert.True(t, aliceLine.Revenue.Equal(aliceLine.ProfessionalPayment.Add(aliceLine.ClinicRevenue)))

	bobLine := report.RevenueByProfessional[1]
	assert.Equal(t, "Bob", bobLine.ProfessionalName)
	assert.Equal(t, 1, bobLine.Count)
	assert.True(t, decimal.RequireFromString("70.00").Equal(bobLine.ProfessionalPayment))
	assert.True(t, decimal.RequireFromString("30.00").Equal(bobLine.ClinicRevenue))

	// Services sorted by id.
	assert.Len(t, report.RevenueByService, 2)
	assert.Equal(t, 1, report.RevenueByService[0].ServiceID)
	assert.Equal(t, 3, report.RevenueByService[0].Count)
	assert.True(t, decimal.RequireFromString("600.00").Equal(report.RevenueByService[0].Revenue))
	assert.Equal(t, 2, report.RevenueByService[1].ServiceID)
	assert.Equal(t, 1, report.RevenueByService[1].Count)
}

func TestBuildRevenueReportEmpty(t *testing.T) {
	report := buildRevenueReport(nil)

	assert.True(t, report.TotalRevenue.IsZero())
	assert.Empty(t, report.RevenueByProfessional)
	assert.Empty(t, report.RevenueByService)
}

func TestMonthWindow(t *testing.T) {
	ref := time.Date(2026, 2, 17, 15, 30, 0, 0, time.UTC)
	start, end := monthWindow(ref)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls into the next year.
	start, end = monthWindow(time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
