package analysis

// Autocorrelation computes the normalized autocorrelation of a scalar
// series for lags 0..maxLag. Lag 0 is always 1 unless the series has no
// variance, in which case the result is all zeros.
func Autocorrelation(data []float64, maxLag int) []float64 {
	n := len(data)
	if n == 0 || maxLag < 0 {
		return nil
	}
	if maxLag >= n {
		maxLag = n - 1
	}

	mean := Mean(data)
	var variance float64
	for _, v := range data {
		d := v - mean
		variance += d * d
	}

	out := make([]float64, maxLag+1)
	if variance == 0 {
		return out
	}
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		for i := 0; i+lag < n; i++ {
			sum += (data[i] - mean) * (data[i+lag] - mean)
		}
		out[lag] = sum / variance
	}
	return out
}

// CorrelationTime is the first lag at which the autocorrelation drops
// below 1/e, a standard decorrelation estimate. Returns the last lag if
// the series never decorrelates within it.
func CorrelationTime(acf []float64) int {
	const threshold = 0.36787944117144233
	for lag, v := range acf {
		if v < threshold {
			return lag
		}
	}
	return len(acf) - 1
}

func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
