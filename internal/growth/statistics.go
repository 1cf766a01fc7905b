package growth

import (
	"math"
	"sort"
	"time"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
)

// Describe calcula mínimo, máximo, média e mediana da série com as datas correspondentes
func Describe(series domain.RevenueSeries) (domain.StatisticsSummary, error) {
	if len(series) == 0 {
		return domain.StatisticsSummary{}, domain.NewRevenueError(domain.ErrEmptyInput, "não há pontos para calcular estatísticas")
	}

	summary := domain.StatisticsSummary{
		Count:   len(series),
		Min:     series[0].Revenue,
		MinDate: series[0].Date,
		Max:     series[0].Revenue,
		MaxDate: series[0].Date,
	}

	sum := 0.0
	for _, point := range series {
		sum += point.Revenue

		if point.Revenue < summary.Min {
			summary.Min = point.Revenue
			summary.MinDate = point.Date
		}

		if point.Revenue > summary.Max {
			summary.Max = point.Revenue
			summary.MaxDate = point.Date
		}
	}

	summary.Mean = sum / float64(len(series))
	summary.MeanNearestDate = nearestDate(series, summary.Mean)

	summary.Median = median(series.Revenues())
	summary.MedianNearestDate = nearestDate(series, summary.Median)

	return summary, nil
}

// FilterByDateRange mantém os pontos entre start e end, inclusive
func FilterByDateRange(series domain.RevenueSeries, start, end time.Time) (domain.RevenueSeries, error) {
	if start.After(end) {
		return nil, domain.NewRevenueError(domain.ErrInvalidArgument, "a data de início não pode ser posterior à data de fim")
	}

	filtered := make(domain.RevenueSeries, 0, len(series))
	for _, point := range series {
		if point.Date.Before(start) || point.Date.After(end) {
			continue
		}
		filtered = append(filtered, point)
	}

	return filtered, nil
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[middle-1] + sorted[middle]) / 2
	}
	return sorted[middle]
}

// nearestDate retorna a data do primeiro ponto com menor distância absoluta ao valor
func nearestDate(series domain.RevenueSeries, value float64) time.Time {
	best := 0
	bestDistance := math.Abs(series[0].Revenue - value)

	for i := 1; i < len(series); i++ {
		distance := math.Abs(series[i].Revenue - value)
		if distance < bestDistance {
			best = i
			bestDistance = distance
		}
	}

	return series[best].Date
}
