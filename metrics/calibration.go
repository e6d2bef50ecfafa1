package metrics

import "fmt"

// CalibrationCurve bins predicted probabilities into nBins uniform bins over
// [0, 1] and returns, for each non-empty bin, the fraction of positives and
// the mean predicted value. Empty bins are dropped.
func CalibrationCurve(labels, probs []float64, nBins int) (fracPos, meanPred []float64, err error) {
	if len(labels) != len(probs) {
		return nil, nil, fmt.Errorf("calibration: %d labels for %d probabilities", len(labels), len(probs))
	}
	if nBins < 1 {
		return nil, nil, fmt.Errorf("calibration: need at least 1 bin, got %d", nBins)
	}

	counts := make([]int, nBins)
	posSum := make([]float64, nBins)
	probSum := make([]float64, nBins)
	for i, p := range probs {
		if p < 0 || p > 1 {
			return nil, nil, fmt.Errorf("calibration: probability %g at index %d outside [0, 1]", p, i)
		}
		b := int(p * float64(nBins))
		if b == nBins {
			b = nBins - 1
		}
		counts[b]++
		posSum[b] += labels[i]
		probSum[b] += p
	}

	for b := 0; b < nBins; b++ {
		if counts[b] == 0 {
			continue
		}
		fracPos = append(fracPos, posSum[b]/float64(counts[b]))
		meanPred = append(meanPred, probSum[b]/float64(counts[b]))
	}
	return fracPos, meanPred, nil
}

// MinMaxScale linearly rescales values into [0, 1]. A constant slice maps to
// all zeros. Used to turn raw decision-function scores into pseudo
// probabilities for calibration plots.
func MinMaxScale(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
