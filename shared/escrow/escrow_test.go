package escrow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"haunters/config"
	"haunters/shared/escrow"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Escrow.HunterShare = 0.85
	cfg.Escrow.ViewingDurationMin = 60
	cfg.Escrow.ReleaseGraceMin = 10

	return cfg
}

func TestSplitCommission(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name         string
		amount       float64
		wantHunter   float64
		wantPlatform float64
	}{
		{name: "round amount", amount: 1000, wantHunter: 850, wantPlatform: 150},
		{name: "odd amount", amount: 333, wantHunter: 283.05, wantPlatform: 49.95},
		{name: "zero amount", amount: 0, wantHunter: 0, wantPlatform: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := escrow.SplitCommission(cfg, tt.amount)

			assert.InDelta(t, tt.wantHunter, split.HunterShare, 0.0001)
			assert.InDelta(t, tt.wantPlatform, split.PlatformShare, 0.0001)
			assert.InDelta(t, tt.amount, split.HunterShare+split.PlatformShare, 0.0001)
		})
	}
}

func TestAutoReleaseAt(t *testing.T) {
	cfg := testConfig()

	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	deadline := escrow.AutoReleaseAt(cfg, start)

	assert.Equal(t, time.Date(2025, 3, 10, 11, 10, 0, 0, time.UTC), deadline)
}

func TestEndTime_WrapsPastMidnight(t *testing.T) {
	cfg := testConfig()

	start := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	end := escrow.EndTime(cfg, start)

	assert.Equal(t, 0, end.Hour())
	assert.Equal(t, 30, end.Minute())
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	clock := time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)

	combined := escrow.CombineDateTime(date, clock)

	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), combined)
}
