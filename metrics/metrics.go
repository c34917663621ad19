// Package metrics provides descriptive statistics and trend analysis over
// numeric series, such as consistency scores or error counts collected from
// repeated validation runs.
package metrics

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptySeries is returned when an analysis needs data and got none.
var ErrEmptySeries = errors.New("metrics: empty series")

// ErrInsufficientData is returned when an analysis needs more points than
// the series holds.
var ErrInsufficientData = errors.New("metrics: insufficient data")

// Statistics are the descriptive statistics of one numeric series.
type Statistics struct {
	Count    int
	Mean     float64
	Median   float64
	// Mode is the most frequent value; ties resolve to the smallest and a
	// series with no repeats reports HasMode false.
	Mode     float64
	HasMode  bool
	StdDev   float64
	Variance float64
	Min      float64
	Max      float64
	Range    float64
	Q1       float64
	Q3       float64
	IQR      float64
	Skewness float64
	Kurtosis float64
}

// Stats computes descriptive statistics for a series.
func Stats(data []float64) (Statistics, error) {
	if len(data) == 0 {
		return Statistics{}, ErrEmptySeries
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mean := Mean(data)
	variance := variance(data, mean)
	stddev := math.Sqrt(variance)
	q1, q3 := quartiles(sorted)
	mode, hasMode := mode(data)

	return Statistics{
		Count:    len(data),
		Mean:     mean,
		Median:   median(sorted),
		Mode:     mode,
		HasMode:  hasMode,
		StdDev:   stddev,
		Variance: variance,
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
		Range:    sorted[len(sorted)-1] - sorted[0],
		Q1:       q1,
		Q3:       q3,
		IQR:      q3 - q1,
		Skewness: standardizedMoment(data, mean, stddev, 3),
		Kurtosis: standardizedMoment(data, mean, stddev, 4),
	}, nil
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mode returns the most frequent value, smallest value winning ties. A
// series where nothing repeats has no mode.
func mode(data []float64) (float64, bool) {
	counts := make(map[float64]int, len(data))
	for _, v := range data {
		counts[v]++
	}
	best, bestCount := 0.0, 1
	for v, n := range counts {
		if n > bestCount || (n == bestCount && n > 1 && v < best) {
			best, bestCount = v, n
		}
	}
	return best, bestCount > 1
}

// variance is the population variance.
func variance(data []float64, mean float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(data))
}

// quartiles expects sorted input and uses the median-split method.
func quartiles(sorted []float64) (q1, q3 float64) {
	n := len(sorted)
	if n == 1 {
		return sorted[0], sorted[0]
	}
	lower := sorted[:n/2]
	var upper []float64
	if n%2 == 0 {
		upper = sorted[n/2:]
	} else {
		upper = sorted[n/2+1:]
	}
	return median(lower), median(upper)
}

// standardizedMoment computes the k-th standardized moment; 3 is skewness,
// 4 is kurtosis. Zero spread yields 0.
func standardizedMoment(data []float64, mean, stddev float64, k int) float64 {
	if stddev == 0 || len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += math.Pow((v-mean)/stddev, float64(k))
	}
	return sum / float64(len(data))
}
