package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionalRevenue aggregates one professional's rows in a report
// window. Revenue = Payment + ClinicRevenue holds to the cent because
// rounding happens per consultation, before aggregation.
type ProfessionalRevenue struct {
	ProfessionalID      uuid.UUID       `json:"professional_id"`
	ProfessionalName    string          `json:"professional_name"`
	Count               int             `json:"count"`
	Revenue             decimal.Decimal `json:"revenue"`
	ProfessionalPayment decimal.Decimal `json:"professional_payment"`
	ClinicRevenue       decimal.Decimal `json:"clinic_revenue"`
}

type ServiceRevenue struct {
	ServiceID   int             `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Count       int             `json:"count"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type RevenueReportResponse struct {
	TotalRevenue          decimal.Decimal       `json:"total_revenue"`
	RevenueByProfessional []ProfessionalRevenue `json:"revenue_by_professional"`
	RevenueByService      []ServiceRevenue      `json:"revenue_by_service"`
}
