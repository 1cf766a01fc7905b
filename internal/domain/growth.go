package domain

import (
	"fmt"
	"math"
	"time"
)

// GrowthCategory é a faixa qualitativa de crescimento ou declínio
type GrowthCategory string

const (
	HighGrowth         GrowthCategory = "high_growth"
	ModerateGrowth     GrowthCategory = "moderate_growth"
	LowGrowth          GrowthCategory = "low_growth"
	Stable             GrowthCategory = "stable"
	MildDecline        GrowthCategory = "mild_decline"
	ModerateDecline    GrowthCategory = "moderate_decline"
	SignificantDecline GrowthCategory = "significant_decline"
)

func (c GrowthCategory) IsGrowth() bool {
	return c == HighGrowth || c == ModerateGrowth || c == LowGrowth
}

func (c GrowthCategory) IsDecline() bool {
	return c == MildDecline || c == ModerateDecline || c == SignificantDecline
}

// Direction indica o sentido da variação para exibição
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionStable   Direction = "stable"
)

// DirectionOf deriva o sentido a partir da categoria
func DirectionOf(c GrowthCategory) Direction {
	switch {
	case c.IsGrowth():
		return DirectionIncrease
	case c.IsDecline():
		return DirectionDecrease
	default:
		return DirectionStable
	}
}

// GrowthThresholds são os limites percentuais das categorias.
// A ordem entre os limites é responsabilidade de quem chama.
type GrowthThresholds struct {
	HighGrowth      float64 `json:"high_growth"`
	ModerateGrowth  float64 `json:"moderate_growth"`
	MildDecline     float64 `json:"mild_decline"`
	ModerateDecline float64 `json:"moderate_decline"`
}

func DefaultGrowthThresholds() GrowthThresholds {
	return GrowthThresholds{
		HighGrowth:      20,
		ModerateGrowth:  5,
		MildDecline:     -5,
		ModerateDecline: -20,
	}
}

// Faixas aceitas pelos controles de limiar
const (
	GrowthThresholdMin  = 0.0
	GrowthThresholdMax  = 50.0
	DeclineThresholdMin = -30.0
	DeclineThresholdMax = 50.0
)

// Validate confere se os limiares estão dentro das faixas aceitas.
// Não exige ordem entre eles; o classificador aplica a primeira regra que casar.
func (t GrowthThresholds) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"high_growth", t.HighGrowth, GrowthThresholdMin, GrowthThresholdMax},
		{"moderate_growth", t.ModerateGrowth, GrowthThresholdMin, GrowthThresholdMax},
		{"mild_decline", t.MildDecline, DeclineThresholdMin, DeclineThresholdMax},
		{"moderate_decline", t.ModerateDecline, DeclineThresholdMin, DeclineThresholdMax},
	}

	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < c.min || c.value > c.max {
			return NewRevenueError(ErrInvalidArgument, fmt.Sprintf("%s deve estar entre %.0f e %.0f", c.name, c.min, c.max))
		}
	}
	return nil
}

// ComparisonResult é o resultado da comparação entre dois períodos
type ComparisonResult struct {
	Previous      float64        `json:"previous"`
	Current       float64        `json:"current"`
	PercentChange float64        `json:"percent_change"`
	AbsoluteDelta float64        `json:"absolute_delta"`
	Category      GrowthCategory `json:"category"`
	Direction     Direction      `json:"direction"`
}

// GrowthPoint é uma entrada da série de variação; Value nil indica ausência de valor
type GrowthPoint struct {
	Date     time.Time `json:"date"`
	Value    *float64  `json:"value"`
	Increase bool      `json:"increase"`
}

// GrowthSeries é a série de variação alinhada 1:1 com a série de faturamento
type GrowthSeries struct {
	Window     int           `json:"window"`
	ColumnName string        `json:"column_name"`
	Points     []GrowthPoint `json:"points"`
}

// GrowthColumnName monta o nome da coluna derivada para a janela informada
func GrowthColumnName(window int) string {
	return fmt.Sprintf("Revenue Growth (%d-Period Window)", window)
}

// Values retorna os valores da série, nil onde não há valor
func (g GrowthSeries) Values() []*float64 {
	values := make([]*float64, len(g.Points))
	for i, point := range g.Points {
		values[i] = point.Value
	}
	return values
}
