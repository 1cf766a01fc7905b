package domain

import "time"

// StatisticsSummary resume a série de faturamento.
// As datas "nearest" apontam para o ponto cujo valor mais se aproxima da estatística.
type StatisticsSummary struct {
	Count             int       `json:"count"`
	Min               float64   `json:"min"`
	MinDate           time.Time `json:"min_date"`
	Max               float64   `json:"max"`
	MaxDate           time.Time `json:"max_date"`
	Mean              float64   `json:"mean"`
	MeanNearestDate   time.Time `json:"mean_nearest_date"`
	Median            float64   `json:"median"`
	MedianNearestDate time.Time `json:"median_nearest_date"`
}
