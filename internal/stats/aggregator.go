package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"LLMTradeLab/internal/model"
)

// Outcome is the kind-agnostic view of one finished experiment. The
// aggregator works on outcomes so fixed-stock and selection records can
// be summarized separately or mixed.
type Outcome struct {
	ModelID     string
	Period      model.AnalysisPeriod // empty for fixed-stock experiments
	ReturnRate  float64
	Accuracy    float64
	HasAccuracy bool
	ProfitLoss  decimal.Decimal
	PeriodDays  int
	ExecutedAt  time.Time
}

// FromFixed converts fixed-stock records to outcomes.
func FromFixed(recs []model.FixedStockRecord) []Outcome {
	out := make([]Outcome, len(recs))
	for i, r := range recs {
		out[i] = Outcome{
			ModelID:     r.ModelID,
			ReturnRate:  r.ReturnRate,
			Accuracy:    r.PredictionAccuracy,
			HasAccuracy: true,
			ProfitLoss:  r.ProfitLoss,
			PeriodDays:  r.PeriodDays,
			ExecutedAt:  r.ExecutedAt,
		}
	}
	return out
}

// FromSelection converts selection records to outcomes. Selection
// experiments carry no price prediction, so no accuracy.
func FromSelection(recs []model.SelectionRecord) []Outcome {
	out := make([]Outcome, len(recs))
	for i, r := range recs {
		out[i] = Outcome{
			ModelID:    r.ModelID,
			Period:     r.Period,
			ReturnRate: r.ReturnRate,
			ProfitLoss: r.ProfitLoss,
			PeriodDays: r.PeriodDays,
			ExecutedAt: r.ExecutedAt,
		}
	}
	return out
}

// Summary holds the aggregate figures over a set of outcomes. All
// fields are zero for an empty input, never NaN.
type Summary struct {
	Count           int
	WinRate         float64 // percent of outcomes with a positive return
	AvgReturn       float64
	AvgAccuracy     float64 // over outcomes that carry an accuracy
	TotalProfitLoss decimal.Decimal
	AvgPeriodDays   float64
}

// Summarize computes the aggregate figures for a set of outcomes.
func Summarize(outs []Outcome) Summary {
	s := Summary{Count: len(outs), TotalProfitLoss: decimal.Zero}
	if len(outs) == 0 {
		return s
	}

	wins := 0
	sumReturn := 0.0
	sumAccuracy := 0.0
	accuracyCount := 0
	sumDays := 0
	for _, o := range outs {
		if o.ReturnRate > 0 {
			wins++
		}
		sumReturn += o.ReturnRate
		if o.HasAccuracy {
			sumAccuracy += o.Accuracy
			accuracyCount++
		}
		sumDays += o.PeriodDays
		s.TotalProfitLoss = s.TotalProfitLoss.Add(o.ProfitLoss)
	}

	n := float64(len(outs))
	s.WinRate = float64(wins) / n * 100
	s.AvgReturn = sumReturn / n
	if accuracyCount > 0 {
		s.AvgAccuracy = sumAccuracy / float64(accuracyCount)
	}
	s.AvgPeriodDays = float64(sumDays) / n
	return s
}

// ModelStat is the aggregate for one model.
type ModelStat struct {
	ModelID string
	Summary
}

// GroupByModel partitions outcomes by model id. Groups appear in
// first-seen order, which keeps later rankings stable on ties.
func GroupByModel(outs []Outcome) []ModelStat {
	order := make([]string, 0)
	groups := make(map[string][]Outcome)
	for _, o := range outs {
		if _, ok := groups[o.ModelID]; !ok {
			order = append(order, o.ModelID)
		}
		groups[o.ModelID] = append(groups[o.ModelID], o)
	}

	stats := make([]ModelStat, 0, len(order))
	for _, id := range order {
		stats = append(stats, ModelStat{ModelID: id, Summary: Summarize(groups[id])})
	}
	return stats
}

// RankByWinRate returns the model stats sorted by win rate descending.
// Ties keep the incoming (group-discovery) order.
func RankByWinRate(stats []ModelStat) []ModelStat {
	ranked := make([]ModelStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].WinRate > ranked[j].WinRate })
	return ranked
}

// RankByAvgReturn returns the model stats sorted by average return
// descending, ties stable.
func RankByAvgReturn(stats []ModelStat) []ModelStat {
	ranked := make([]ModelStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].AvgReturn > ranked[j].AvgReturn })
	return ranked
}

// PeriodStat is the aggregate for one analysis period.
type PeriodStat struct {
	Period model.AnalysisPeriod
	Summary
}

// GroupByPeriod partitions selection outcomes by analysis period, in
// first-seen order. Outcomes without a period (fixed-stock) are skipped.
func GroupByPeriod(outs []Outcome) []PeriodStat {
	order := make([]model.AnalysisPeriod, 0)
	groups := make(map[model.AnalysisPeriod][]Outcome)
	for _, o := range outs {
		if o.Period == "" {
			continue
		}
		if _, ok := groups[o.Period]; !ok {
			order = append(order, o.Period)
		}
		groups[o.Period] = append(groups[o.Period], o)
	}

	stats := make([]PeriodStat, 0, len(order))
	for _, p := range order {
		stats = append(stats, PeriodStat{Period: p, Summary: Summarize(groups[p])})
	}
	return stats
}

// DistinctModels returns how many different model ids appear.
func DistinctModels(outs []Outcome) int {
	seen := make(map[string]struct{})
	for _, o := range outs {
		seen[o.ModelID] = struct{}{}
	}
	return len(seen)
}

// CumulativePoint is one step of the running return-rate sum.
type CumulativePoint struct {
	ExecutedAt time.Time
	Cumulative float64
}

// CumulativeReturns orders outcomes by execution time (stable) and
// accumulates the return rates, giving the time-series performance view.
func CumulativeReturns(outs []Outcome) []CumulativePoint {
	ordered := make([]Outcome, len(outs))
	copy(ordered, outs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ExecutedAt.Before(ordered[j].ExecutedAt) })

	points := make([]CumulativePoint, len(ordered))
	sum := 0.0
	for i, o := range ordered {
		sum += o.ReturnRate
		points[i] = CumulativePoint{ExecutedAt: o.ExecutedAt, Cumulative: sum}
	}
	return points
}
