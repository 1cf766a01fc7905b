package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowthThresholdsValidate(t *testing.T) {
	tests := []struct {
		name       string
		thresholds GrowthThresholds
		wantErr    bool
	}{
		{"padrão", DefaultGrowthThresholds(), false},
		{"limites extremos", GrowthThresholds{HighGrowth: 50, ModerateGrowth: 0, MildDecline: -30, ModerateDecline: 50}, false},
		{"crescimento negativo", GrowthThresholds{HighGrowth: -1, ModerateGrowth: 5, MildDecline: -5, ModerateDecline: -20}, true},
		{"declínio abaixo de -30", GrowthThresholds{HighGrowth: 20, ModerateGrowth: 5, MildDecline: -5, ModerateDecline: -31}, true},
		{"NaN", GrowthThresholds{HighGrowth: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.thresholds.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, DirectionIncrease, DirectionOf(LowGrowth))
	assert.Equal(t, DirectionDecrease, DirectionOf(SignificantDecline))
	assert.Equal(t, DirectionStable, DirectionOf(Stable))
}

func TestGrowthColumnName(t *testing.T) {
	assert.Equal(t, "Revenue Growth (3-Period Window)", GrowthColumnName(3))
}
