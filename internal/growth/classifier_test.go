package growth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
)

func TestClassify_Boundaries(t *testing.T) {
	thresholds := domain.GrowthThresholds{HighGrowth: 20, ModerateGrowth: 5, MildDecline: -5, ModerateDecline: -20}

	tests := []struct {
		name          string
		current       float64
		wantPercent   float64
		wantCategory  domain.GrowthCategory
		wantDelta     float64
		wantDirection domain.Direction
	}{
		{name: "acima do limite de crescimento elevado", current: 121, wantPercent: 21, wantCategory: domain.HighGrowth, wantDelta: 21, wantDirection: domain.DirectionIncrease},
		{name: "entre moderado e elevado", current: 110, wantPercent: 10, wantCategory: domain.ModerateGrowth, wantDelta: 10, wantDirection: domain.DirectionIncrease},
		{name: "igual ao limite moderado cai para crescimento baixo", current: 105, wantPercent: 5, wantCategory: domain.LowGrowth, wantDelta: 5, wantDirection: domain.DirectionIncrease},
		{name: "sem variação", current: 100, wantPercent: 0, wantCategory: domain.Stable, wantDelta: 0, wantDirection: domain.DirectionStable},
		{name: "declínio leve", current: 97, wantPercent: -3, wantCategory: domain.MildDecline, wantDelta: 3, wantDirection: domain.DirectionDecrease},
		{name: "declínio abaixo do limite leve", current: 94, wantPercent: -6, wantCategory: domain.ModerateDecline, wantDelta: 6, wantDirection: domain.DirectionDecrease},
		{name: "igual ao limite moderado de declínio", current: 80, wantPercent: -20, wantCategory: domain.SignificantDecline, wantDelta: 20, wantDirection: domain.DirectionDecrease},
		{name: "faturamento atual zerado", current: 0, wantPercent: -100, wantCategory: domain.SignificantDecline, wantDelta: 100, wantDirection: domain.DirectionDecrease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Classify(100, tt.current, thresholds)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantPercent, result.PercentChange, 1e-9)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.InDelta(t, tt.wantDelta, result.AbsoluteDelta, 1e-9)
			assert.Equal(t, tt.wantDirection, result.Direction)
			assert.Equal(t, 100.0, result.Previous)
			assert.Equal(t, tt.current, result.Current)
		})
	}
}

func TestClassify_PercentFormula(t *testing.T) {
	thresholds := domain.DefaultGrowthThresholds()

	pairs := [][2]float64{{1, 0}, {3.5, 7.25}, {1000, 999.99}, {42, 42}, {0.01, 250000}, {12345.67, 8901.23}}
	for _, p := range pairs {
		result, err := Classify(p[0], p[1], thresholds)
		require.NoError(t, err)

		assert.InDelta(t, (p[1]-p[0])/p[0]*100, result.PercentChange, 1e-9)
		assert.NotEmpty(t, result.Category)
		assert.GreaterOrEqual(t, result.AbsoluteDelta, 0.0)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	thresholds := domain.DefaultGrowthThresholds()

	first, err := Classify(250.5, 260.75, thresholds)
	require.NoError(t, err)
	second, err := Classify(250.5, 260.75, thresholds)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassify_InconsistentThresholdsKeepFirstMatch(t *testing.T) {
	// moderado maior que elevado: 15% já casa com a primeira regra
	thresholds := domain.GrowthThresholds{HighGrowth: 10, ModerateGrowth: 30, MildDecline: -20, ModerateDecline: -5}

	result, err := Classify(100, 115, thresholds)
	require.NoError(t, err)
	assert.Equal(t, domain.HighGrowth, result.Category)

	result, err = Classify(100, 90, thresholds)
	require.NoError(t, err)
	assert.Equal(t, domain.MildDecline, result.Category)

	result, err = Classify(100, 75, thresholds)
	require.NoError(t, err)
	assert.Equal(t, domain.SignificantDecline, result.Category)
}

func TestClassify_Errors(t *testing.T) {
	thresholds := domain.DefaultGrowthThresholds()

	tests := []struct {
		name     string
		previous float64
		current  float64
		wantErr  error
	}{
		{name: "referência zero com atual positivo", previous: 0, current: 100, wantErr: domain.ErrDivisionByZero},
		{name: "referência zero com atual zero", previous: 0, current: 0, wantErr: domain.ErrDivisionByZero},
		{name: "referência negativa", previous: -10, current: 5, wantErr: domain.ErrInvalidArgument},
		{name: "atual negativo", previous: 10, current: -5, wantErr: domain.ErrInvalidArgument},
		{name: "NaN", previous: math.NaN(), current: 5, wantErr: domain.ErrInvalidArgument},
		{name: "infinito", previous: 10, current: math.Inf(1), wantErr: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.previous, tt.current, thresholds)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
