package calculator

import (
	"math"
	"sort"
	"strings"

	"StockCharter/internal/model"
)

// Statistic names accepted by Compute.
const (
	StatMean   = "mean"
	StatMedian = "median"
	StatStd    = "std"
)

// ValidPrices extracts the numeric close prices from a series, dropping
// absent and non-finite values. This is the coercion step every statistic
// runs over.
func ValidPrices(s model.Series) []float64 {
	prices := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Close == nil {
			continue
		}
		v := *p.Close
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		prices = append(prices, v)
	}
	return prices
}

// Compute evaluates a named statistic over the given prices.
//
// Empty input yields an empty result regardless of the statistic, and an
// unknown statistic name also yields an empty result: only std surfaces a
// user-visible error, when a band is undefined for a single point.
func Compute(prices []float64, stat string) model.StatResult {
	if len(prices) == 0 {
		return model.StatResult{Kind: model.StatEmpty}
	}
	switch strings.ToLower(stat) {
	case StatMean:
		return model.StatResult{Kind: model.StatValue, Value: Mean(prices)}
	case StatMedian:
		return model.StatResult{Kind: model.StatValue, Value: Median(prices)}
	case StatStd:
		if len(prices) == 1 {
			return model.StatResult{Kind: model.StatError, Message: "Only one price point"}
		}
		mean := Mean(prices)
		std := SampleStd(prices)
		return model.StatResult{Kind: model.StatBand, Upper: mean + std, Lower: mean - std}
	default:
		return model.StatResult{Kind: model.StatEmpty}
	}
}

// Mean computes the arithmetic mean. Assumes non-empty input.
func Mean(prices []float64) float64 {
	sum := 0.0
	for _, v := range prices {
		sum += v
	}
	return sum / float64(len(prices))
}

// Median computes the standard median, interpolating between the two central
// values for even counts. Assumes non-empty input.
func Median(prices []float64) float64 {
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// SampleStd computes the sample standard deviation (divisor n-1).
// Assumes at least two values.
func SampleStd(prices []float64) float64 {
	mean := Mean(prices)
	sum := 0.0
	for _, v := range prices {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(prices)-1))
}
