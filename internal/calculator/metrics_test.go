package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestReturnRate(t *testing.T) {
	tests := []struct {
		name string
		buy  int64
		sell int64
		want float64
	}{
		{"gain", 1000, 1100, 10.0},
		{"loss", 1000, 900, -10.0},
		{"flat", 1000, 1000, 0},
		{"zero buy price", 0, 1100, 0},
	}
	for _, tt := range tests {
		if got := ReturnRate(d(tt.buy), d(tt.sell)); got != tt.want {
			t.Errorf("%s: ReturnRate(%d, %d) = %v, want %v", tt.name, tt.buy, tt.sell, got, tt.want)
		}
	}
}

func TestPredictionAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		actual    int64
		predicted int64
		want      float64
	}{
		{"exact prediction", 1000, 1000, 100},
		{"10 percent off", 1000, 1100, 90},
		{"100 percent off clamps to zero", 1000, 2000, 0},
		{"beyond 100 percent off stays zero", 1000, 3000, 0},
		{"half the actual", 1000, 500, 50},
		{"zero actual price", 0, 500, 0},
	}
	for _, tt := range tests {
		if got := PredictionAccuracy(d(tt.actual), d(tt.predicted)); got != tt.want {
			t.Errorf("%s: PredictionAccuracy(%d, %d) = %v, want %v", tt.name, tt.actual, tt.predicted, got, tt.want)
		}
	}
}

func TestProfitLoss(t *testing.T) {
	if got := ProfitLoss(d(1000), d(1100)); !got.Equal(d(100)) {
		t.Errorf("ProfitLoss(1000, 1100) = %s, want 100", got)
	}
	if got := ProfitLoss(d(1000), d(900)); !got.Equal(d(-100)) {
		t.Errorf("ProfitLoss(1000, 900) = %s, want -100", got)
	}
}

func TestPeriodDays(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", day(2024, 1, 4), day(2024, 1, 4), 0},
		{"one month and change", day(2024, 1, 4), day(2024, 2, 5), 32},
		{"across a year boundary", day(2023, 12, 28), day(2024, 1, 4), 7},
		{"inverted dates clamp to zero", day(2024, 2, 5), day(2024, 1, 4), 0},
		{"time-of-day is ignored", day(2024, 1, 4).Add(23 * time.Hour), day(2024, 1, 5), 1},
	}
	for _, tt := range tests {
		if got := PeriodDays(tt.start, tt.end); got != tt.want {
			t.Errorf("%s: PeriodDays = %d, want %d", tt.name, got, tt.want)
		}
	}
}
