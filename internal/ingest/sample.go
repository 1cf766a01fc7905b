package ingest

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/revenue-compare-api/internal/domain"
	"github.com/vfg2006/revenue-compare-api/pkg/utils"
)

// Trend define o sinal da sazonalidade
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
)

const (
	sampleMinRevenue = 5000
	sampleMaxRevenue = 20000
	sampleMinStep    = 28
	sampleMaxStep    = 35
	seasonAmplitude  = 1000.0
)

var (
	sampleStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	sampleEnd   = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// SampleParams parametriza a geração; Seed 0 deixa o cache escolher a semente
type SampleParams struct {
	Period int   `json:"period"`
	Trend  Trend `json:"trend"`
	Seed   int64 `json:"seed"`
}

// Sample é a série gerada com os parâmetros efetivos
type Sample struct {
	SampleParams
	Series domain.RevenueSeries `json:"series"`
}

// ParseTrend aceita "positive"/"negative" sem diferenciar maiúsculas; vazio é positive
func ParseTrend(raw string) (Trend, error) {
	switch Trend(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TrendPositive:
		return TrendPositive, nil
	case TrendNegative:
		return TrendNegative, nil
	default:
		return "", domain.NewRevenueError(domain.ErrInvalidArgument, fmt.Sprintf("tendência desconhecida: %q", raw))
	}
}

func (p SampleParams) validate() error {
	if p.Period != 3 && p.Period != 12 {
		return domain.NewRevenueError(domain.ErrInvalidArgument, fmt.Sprintf("período de sazonalidade deve ser 3 ou 12, recebido %d", p.Period))
	}
	if _, err := ParseTrend(string(p.Trend)); err != nil {
		return err
	}
	return nil
}

// GenerateSample gera pontos de 2020-01-01 até antes de 2024-01-01 com passos de 28 a 35 dias.
// A mesma semente sempre produz a mesma série.
func GenerateSample(params SampleParams) (domain.RevenueSeries, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(uint64(params.Seed), uint64(params.Period)))
	trend, _ := ParseTrend(string(params.Trend))
	sign := 1.0
	if trend == TrendNegative {
		sign = -1.0
	}

	series := make(domain.RevenueSeries, 0, 50)
	for current := sampleStart; current.Before(sampleEnd); {
		season := sign * seasonality(current.Month(), params.Period)
		base := float64(sampleMinRevenue + rng.IntN(sampleMaxRevenue-sampleMinRevenue+1))
		revenue := utils.RoundWithTwoDecimalPlace(base + season)

		series = append(series, domain.RevenuePoint{Date: current, Revenue: revenue})
		current = current.AddDate(0, 0, sampleMinStep+rng.IntN(sampleMaxStep-sampleMinStep+1))
	}

	return series, nil
}

func seasonality(month time.Month, period int) float64 {
	switch period {
	case 3:
		return math.Sin(float64(int(month)%3)*(2*math.Pi/3)) * seasonAmplitude
	case 12:
		return math.Sin(float64(int(month)-1)*(2*math.Pi/12)) * seasonAmplitude
	default:
		return 0
	}
}

type sampleKey struct {
	period int
	trend  Trend
	seed   int64
}

// SampleCache memoiza amostras por parâmetros.
// Para Seed 0 guarda uma semente por (período, tendência), trocada em Regenerate.
type SampleCache struct {
	mu      sync.Mutex
	seeds   map[sampleKey]int64
	samples map[sampleKey]domain.RevenueSeries
	newSeed func() int64
}

func NewSampleCache() *SampleCache {
	return newSampleCache(func() int64 {
		return rand.Int64N(math.MaxInt64-1) + 1
	})
}

func newSampleCache(newSeed func() int64) *SampleCache {
	return &SampleCache{
		seeds:   make(map[sampleKey]int64),
		samples: make(map[sampleKey]domain.RevenueSeries),
		newSeed: newSeed,
	}
}

// Get retorna a amostra em cache ou gera uma nova
func (c *SampleCache) Get(params SampleParams) (*Sample, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	params.Trend, _ = ParseTrend(string(params.Trend))

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.getLocked(params)
}

// Invalidate descarta a amostra e, para Seed 0, a semente escolhida
func (c *SampleCache) Invalidate(params SampleParams) {
	params.Trend, _ = ParseTrend(string(params.Trend))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidateLocked(params)
}

// Regenerate descarta a amostra e gera outra; com Seed 0 a nova semente muda a série
func (c *SampleCache) Regenerate(params SampleParams) (*Sample, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	params.Trend, _ = ParseTrend(string(params.Trend))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidateLocked(params)
	return c.getLocked(params)
}

func (c *SampleCache) getLocked(params SampleParams) (*Sample, error) {
	if params.Seed == 0 {
		slot := sampleKey{period: params.Period, trend: params.Trend}
		seed, ok := c.seeds[slot]
		if !ok {
			seed = c.newSeed()
			c.seeds[slot] = seed
		}
		params.Seed = seed
	}

	key := sampleKey{period: params.Period, trend: params.Trend, seed: params.Seed}
	if series, ok := c.samples[key]; ok {
		return &Sample{SampleParams: params, Series: slices.Clone(series)}, nil
	}

	series, err := GenerateSample(params)
	if err != nil {
		return nil, err
	}
	c.samples[key] = series

	return &Sample{SampleParams: params, Series: slices.Clone(series)}, nil
}

func (c *SampleCache) invalidateLocked(params SampleParams) {
	seed := params.Seed
	if seed == 0 {
		slot := sampleKey{period: params.Period, trend: params.Trend}
		seed = c.seeds[slot]
		delete(c.seeds, slot)
	}
	delete(c.samples, sampleKey{period: params.Period, trend: params.Trend, seed: seed})
}
