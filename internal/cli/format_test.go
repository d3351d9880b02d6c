package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "N$0.00"},
		{"12.5", "N$12.50"},
		{"1234.5", "N$1,234.50"},
		{"-1234567.891", "N$1,234,567.89"},
		{"999", "N$999.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney("N$", decimal.RequireFromString(tt.in)), tt.in)
	}
	assert.Equal(t, "-N$5.00", FormatSignedMoney("N$", decimal.NewFromInt(-5)))
}

func TestFormatCompactMoney(t *testing.T) {
	assert.Equal(t, "$950", FormatCompactMoney("$", decimal.NewFromInt(950)))
	assert.Equal(t, "$1.2K", FormatCompactMoney("$", decimal.NewFromInt(1234)))
	assert.Equal(t, "-$2.5M", FormatCompactMoney("$", decimal.NewFromInt(-2_500_000)))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
	assert.Equal(t, "12", FormatNumber(12))
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+N$50.00", FormatDelta("N$", decimal.NewFromInt(150), decimal.NewFromInt(100)))
	assert.Equal(t, "-N$50.00", FormatDelta("N$", decimal.NewFromInt(50), decimal.NewFromInt(100)))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(nil))
	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-15", FormatDate(&d))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "groc…", Truncate("groceries", 5))
}

func TestHeatLevel(t *testing.T) {
	assert.Equal(t, "·", HeatLevel(0, 100))
	assert.Equal(t, "░", HeatLevel(1, 100))
	assert.Equal(t, "█", HeatLevel(100, 100))
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "▁█", RenderSparkline([]float64{0, 10}))
	assert.Empty(t, RenderSparkline(nil))
}
