package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-compare-api/internal/domain"
)

func TestGenerateSample(t *testing.T) {
	for _, period := range []int{3, 12} {
		series, err := GenerateSample(SampleParams{Period: period, Trend: TrendPositive, Seed: 42})
		require.NoError(t, err)
		require.NotEmpty(t, series)

		assert.Equal(t, sampleStart, series[0].Date)
		assert.NoError(t, series.Validate())

		for i, point := range series {
			assert.True(t, point.Date.Before(sampleEnd))
			assert.GreaterOrEqual(t, point.Revenue, float64(sampleMinRevenue)-seasonAmplitude)
			assert.LessOrEqual(t, point.Revenue, float64(sampleMaxRevenue)+seasonAmplitude)

			if i > 0 {
				step := int(point.Date.Sub(series[i-1].Date).Hours() / 24)
				assert.GreaterOrEqual(t, step, sampleMinStep)
				assert.LessOrEqual(t, step, sampleMaxStep)
			}
		}

		last := series[len(series)-1].Date
		assert.False(t, last.AddDate(0, 0, sampleMaxStep).Before(sampleEnd), "a série para perto do fim do intervalo")
	}
}

func TestGenerateSample_Deterministic(t *testing.T) {
	params := SampleParams{Period: 12, Trend: TrendNegative, Seed: 7}

	first, err := GenerateSample(params)
	require.NoError(t, err)
	second, err := GenerateSample(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSample_TrendFlipsSeasonality(t *testing.T) {
	positive, err := GenerateSample(SampleParams{Period: 12, Trend: TrendPositive, Seed: 11})
	require.NoError(t, err)
	negative, err := GenerateSample(SampleParams{Period: 12, Trend: "Negative", Seed: 11})
	require.NoError(t, err)

	require.Equal(t, len(positive), len(negative))
	for i := range positive {
		// mesma semente: base e datas iguais, só a sazonalidade troca de sinal
		assert.Equal(t, positive[i].Date, negative[i].Date)
		season := seasonality(positive[i].Date.Month(), 12)
		assert.InDelta(t, 2*season, positive[i].Revenue-negative[i].Revenue, 0.02)
	}
}

func TestGenerateSample_InvalidParams(t *testing.T) {
	tests := []SampleParams{
		{Period: 6, Trend: TrendPositive},
		{Period: 0},
		{Period: 12, Trend: "sideways"},
	}

	for _, params := range tests {
		_, err := GenerateSample(params)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument), "params %+v", params)
	}
}

func TestSeasonality(t *testing.T) {
	// período 12: janeiro é zero e abril é o pico
	assert.InDelta(t, 0, seasonality(1, 12), 1e-9)
	assert.InDelta(t, 1000, seasonality(4, 12), 1e-9)
	// período 3: meses múltiplos de 3 são zero
	assert.InDelta(t, 0, seasonality(3, 3), 1e-9)
	assert.InDelta(t, 866.0254, seasonality(1, 3), 1e-4)
}

func TestSampleCache(t *testing.T) {
	seeds := []int64{100, 200}
	next := 0
	cache := newSampleCache(func() int64 {
		seed := seeds[next]
		next++
		return seed
	})

	params := SampleParams{Period: 3, Trend: TrendPositive}

	first, err := cache.Get(params)
	require.NoError(t, err)
	assert.Equal(t, int64(100), first.Seed)

	again, err := cache.Get(params)
	require.NoError(t, err)
	assert.Equal(t, first.Series, again.Series)
	assert.Equal(t, 1, next, "semente reaproveitada")

	regenerated, err := cache.Regenerate(params)
	require.NoError(t, err)
	assert.Equal(t, int64(200), regenerated.Seed)

	expected, err := GenerateSample(SampleParams{Period: 3, Trend: TrendPositive, Seed: 200})
	require.NoError(t, err)
	assert.Equal(t, expected, regenerated.Series)
}

func TestSampleCache_ExplicitSeed(t *testing.T) {
	cache := newSampleCache(func() int64 {
		t.Fatal("semente explícita não deve sortear")
		return 0
	})

	params := SampleParams{Period: 12, Trend: TrendNegative, Seed: 5}
	sample, err := cache.Get(params)
	require.NoError(t, err)

	cache.Invalidate(params)
	regenerated, err := cache.Regenerate(params)
	require.NoError(t, err)

	assert.Equal(t, sample.Series, regenerated.Series)
}

func TestSampleCache_ReturnsCopies(t *testing.T) {
	cache := NewSampleCache()
	params := SampleParams{Period: 12, Trend: TrendPositive, Seed: 9}

	sample, err := cache.Get(params)
	require.NoError(t, err)
	original := sample.Series[0].Revenue
	sample.Series[0].Revenue = -1

	again, err := cache.Get(params)
	require.NoError(t, err)
	assert.Equal(t, original, again.Series[0].Revenue)
}
