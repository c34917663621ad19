package metrics

import "math"

// NormalizeMinMax rescales the series into [0, 1]. A constant series maps
// every point to 0.
func NormalizeMinMax(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptySeries
	}

	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(data))
	if max == min {
		return out, nil
	}
	for i, v := range data {
		out[i] = (v - min) / (max - min)
	}
	return out, nil
}

// NormalizeZScore centers the series at 0 with unit standard deviation. A
// constant series maps every point to 0.
func NormalizeZScore(data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmptySeries
	}

	mean := Mean(data)
	stddev := math.Sqrt(variance(data, mean))

	out := make([]float64, len(data))
	if stddev == 0 {
		return out, nil
	}
	for i, v := range data {
		out[i] = (v - mean) / stddev
	}
	return out, nil
}
