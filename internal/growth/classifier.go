// Package growth implementa as computações puras sobre faturamento:
// classificação de crescimento, variação por janela e estatísticas descritivas.
package growth

import (
	"math"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
)

// Classify compara o faturamento atual com o anterior e classifica a variação.
// As regras são avaliadas em ordem e a primeira que casar vence, mesmo que os
// limites estejam fora de ordem.
func Classify(previous, current float64, thresholds domain.GrowthThresholds) (domain.ComparisonResult, error) {
	if !isFinite(previous) || !isFinite(current) {
		return domain.ComparisonResult{}, domain.NewRevenueError(domain.ErrInvalidArgument, "faturamento não numérico")
	}

	if previous == 0 {
		return domain.ComparisonResult{}, domain.NewRevenueError(domain.ErrDivisionByZero, "o faturamento de referência deve ser maior que zero")
	}

	if previous < 0 || current < 0 {
		return domain.ComparisonResult{}, domain.NewRevenueError(domain.ErrInvalidArgument, "faturamento não pode ser negativo")
	}

	percent := (current - previous) / previous * 100
	category := categorize(percent, thresholds)

	delta := current - previous
	if category.IsDecline() {
		delta = previous - current
	}

	return domain.ComparisonResult{
		Previous:      previous,
		Current:       current,
		PercentChange: percent,
		AbsoluteDelta: math.Abs(delta),
		Category:      category,
		Direction:     domain.DirectionOf(category),
	}, nil
}

func categorize(percent float64, t domain.GrowthThresholds) domain.GrowthCategory {
	switch {
	case percent > t.HighGrowth:
		return domain.HighGrowth
	case percent > t.ModerateGrowth:
		return domain.ModerateGrowth
	case percent > 0:
		return domain.LowGrowth
	case percent == 0:
		return domain.Stable
	case percent > t.MildDecline:
		return domain.MildDecline
	case percent > t.ModerateDecline:
		return domain.ModerateDecline
	default:
		return domain.SignificantDecline
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
