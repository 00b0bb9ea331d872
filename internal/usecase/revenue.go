package usecase

import (
	"sort"
	"time"

	"convenio-backend/internal/delivery/dto"
	"convenio-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// splitConsultation divides one consultation's value between the
// professional and the clinic. Convenio rows pay the professional their
// percentage, rounded to cents half away from zero, with the exact
// remainder to the clinic; private rows pay the professional in full.
// Professional + clinic always reassembles the original value.
func splitConsultation(c *entity.Consultation) (professional, clinic decimal.Decimal) {
	if !c.IsConvenio() {
		return c.Value, decimal.Zero
	}
	professional = c.Value.Mul(c.Professional.Percentage).Div(oneHundred).Round(2)
	clinic = c.Value.Sub(professional)
	return professional, clinic
}

// buildRevenueReport aggregates confirmed and completed consultations of
// a period. Rounding happens per row, before aggregation, so the grand
// total is the exact sum of the per-professional lines.
func buildRevenueReport(consultations []entity.Consultation) *dto.RevenueReportResponse {
	report := &dto.RevenueReportResponse{
		TotalRevenue:          decimal.Zero,
		RevenueByProfessional: []dto.ProfessionalRevenue{},
		RevenueByService:      []dto.ServiceRevenue{},
	}

	byProfessional := map[string]*dto.ProfessionalRevenue{}
	byService := map[int]*dto.ServiceRevenue{}

	for i := range consultations {
		c := &consultations[i]
		if !c.CountsForRevenue() {
			continue
		}

		professional, clinic := splitConsultation(c)
		report.TotalRevenue = report.TotalRevenue.Add(c.Value)

		key := c.ProfessionalID.String()
		line, ok := byProfessional[key]
		if !ok {
			line = &dto.ProfessionalRevenue{
				ProfessionalID:      c.ProfessionalID,
				ProfessionalName:    c.Professional.User.FullName,
				Revenue:             decimal.Zero,
				ProfessionalPayment: decimal.Zero,
				ClinicRevenue:       decimal.Zero,
			}
			byProfessional[key] = line
		}
		line.Count++
		line.Revenue = line.Revenue.Add(c.Value)
		line.ProfessionalPayment = line.ProfessionalPayment.Add(professional)
		line.ClinicRevenue = line.ClinicRevenue.Add(clinic)

		serviceLine, ok := byService[c.ServiceID]
		if !ok {
			serviceLine = &dto.ServiceRevenue{
				ServiceID:   c.ServiceID,
				ServiceName: c.Service.Name,
				Revenue:     decimal.Zero,
			}
			byService[c.ServiceID] = serviceLine
		}
		serviceLine.Count++
		serviceLine.Revenue = serviceLine.Revenue.Add(c.Value)
	}

	for _, line := range byProfessional {
		report.RevenueByProfessional = append(report.RevenueByProfessional, *line)
	}
	sort.Slice(report.RevenueByProfessional, func(i, j int) bool {
		return report.RevenueByProfessional[i].ProfessionalName < report.RevenueByProfessional[j].ProfessionalName
	})

	for _, line := range byService {
		report.RevenueByService = append(report.RevenueByService, *line)
	}
	sort.Slice(report.RevenueByService, func(i, j int) bool {
		return report.RevenueByService[i].ServiceID < report.RevenueByService[j].ServiceID
	})

	return report
}

// monthWindow returns [first day of ref's month, first day of the next).
func monthWindow(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
