package domain

import "time"

// YearComparison é a entrada da comparação entre um ano de referência e o ano atual
type YearComparison struct {
	ReferenceYear    int              `json:"reference_year"`
	CurrentYear      int              `json:"current_year"`
	ReferenceRevenue float64          `json:"reference_revenue"`
	CurrentRevenue   float64          `json:"current_revenue"`
	Thresholds       GrowthThresholds `json:"thresholds"`
}

// YearComparisonReport é a comparação classificada e registrada no histórico
type YearComparisonReport struct {
	ID            int64            `json:"id"`
	ReferenceYear int              `json:"reference_year"`
	CurrentYear   int              `json:"current_year"`
	Thresholds    GrowthThresholds `json:"thresholds"`
	Result        ComparisonResult `json:"result"`
	CreatedBy     int              `json:"created_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
