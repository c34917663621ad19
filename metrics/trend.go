package metrics

import "math"

// Direction classifies the slope of a series.
type Direction int

const (
	Stable Direction = iota
	Increasing
	Decreasing
)

// String returns the canonical name of the direction.
func (d Direction) String() string {
	switch d {
	case Stable:
		return "stable"
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "unknown"
	}
}

// TrendResult is the outcome of a linear trend analysis.
type TrendResult struct {
	Slope     float64
	Intercept float64
	// RSquared is the regression's coefficient of determination.
	RSquared  float64
	Direction Direction
}

// slopeEpsilon separates a stable series from a trending one, relative to
// the series mean.
const slopeEpsilon = 1e-3

// Trend fits a least-squares line over the series (index as x) and
// classifies its direction. At least two points are required.
func Trend(data []float64) (TrendResult, error) {
	if len(data) == 0 {
		return TrendResult{}, ErrEmptySeries
	}
	if len(data) < 2 {
		return TrendResult{}, ErrInsufficientData
	}

	n := float64(len(data))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range data {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssTot, ssRes float64
	for i, y := range data {
		fit := intercept + slope*float64(i)
		ssTot += (y - meanY) * (y - meanY)
		ssRes += (y - fit) * (y - fit)
	}
	rSquared := 1.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	result := TrendResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rSquared,
	}

	threshold := slopeEpsilon
	if meanY != 0 {
		threshold = math.Abs(meanY) * slopeEpsilon
	}
	switch {
	case slope > threshold:
		result.Direction = Increasing
	case slope < -threshold:
		result.Direction = Decreasing
	default:
		result.Direction = Stable
	}
	return result, nil
}

// GrowthRate returns the relative change from the first to the last point,
// e.g. 0.5 for 100 -> 150. A zero starting value is an error.
func GrowthRate(data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, ErrEmptySeries
	}
	if len(data) < 2 {
		return 0, ErrInsufficientData
	}
	if data[0] == 0 {
		return 0, ErrInsufficientData
	}
	return (data[len(data)-1] - data[0]) / data[0], nil
}

// CompoundGrowthRate returns the per-period compound growth rate between an
// initial and a final value over the given number of periods.
func CompoundGrowthRate(initial, final, periods float64) float64 {
	if initial <= 0 || periods <= 0 {
		return 0
	}
	return math.Pow(final/initial, 1/periods) - 1
}

// MovingAverage returns the rolling mean over a window. The result has
// len(data)-window+1 points.
func MovingAverage(data []float64, window int) ([]float64, error) {
	if window <= 0 || window > len(data) {
		return nil, ErrInsufficientData
	}
	out := make([]float64, 0, len(data)-window+1)
	sum := 0.0
	for i, v := range data {
		sum += v
		if i >= window {
			sum -= data[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}
