package metrics

import (
	"reflect"
	"testing"
)

// TestCalibrationCurve verifies binning, per-bin averages and the dropping
// of empty bins.
func TestCalibrationCurve(t *testing.T) {
	labels := []float64{0, 0, 1, 1}
	probs := []float64{0.1, 0.2, 0.8, 0.9}

	fracPos, meanPred, err := CalibrationCurve(labels, probs, 2)
	if err != nil {
		t.Fatalf("CalibrationCurve failed: %v", err)
	}
	if len(fracPos) != 2 || len(meanPred) != 2 {
		t.Fatalf("want 2 occupied bins, got %d and %d", len(fracPos), len(meanPred))
	}
	if fracPos[0] != 0 || fracPos[1] != 1 {
		t.Errorf("fracPos = %v, want [0 1]", fracPos)
	}
	if !almostEqual(meanPred[0], 0.15, 1e-12) || !almostEqual(meanPred[1], 0.85, 1e-12) {
		t.Errorf("meanPred = %v, want [0.15 0.85]", meanPred)
	}
}

// TestCalibrationCurveEdgeProbability verifies p == 1 lands in the top bin.
func TestCalibrationCurveEdgeProbability(t *testing.T) {
	fracPos, _, err := CalibrationCurve([]float64{1}, []float64{1.0}, 10)
	if err != nil {
		t.Fatalf("CalibrationCurve failed: %v", err)
	}
	if len(fracPos) != 1 || fracPos[0] != 1 {
		t.Errorf("fracPos = %v, want [1]", fracPos)
	}
}

// TestCalibrationCurveErrors covers invalid inputs.
func TestCalibrationCurveErrors(t *testing.T) {
	if _, _, err := CalibrationCurve([]float64{1}, []float64{0.5, 0.6}, 10); err == nil {
		t.Error("length mismatch should be rejected")
	}
	if _, _, err := CalibrationCurve([]float64{1}, []float64{0.5}, 0); err == nil {
		t.Error("zero bins should be rejected")
	}
	if _, _, err := CalibrationCurve([]float64{1}, []float64{1.5}, 10); err == nil {
		t.Error("probabilities outside [0, 1] should be rejected")
	}
}

// TestMinMaxScale verifies rescaling to [0, 1] and the constant fallback.
func TestMinMaxScale(t *testing.T) {
	got := MinMaxScale([]float64{2, 4, 6})
	want := []float64{0, 0.5, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MinMaxScale = %v, want %v", got, want)
	}

	if got := MinMaxScale([]float64{3, 3, 3}); !reflect.DeepEqual(got, []float64{0, 0, 0}) {
		t.Errorf("constant input should map to zeros, got %v", got)
	}
	if got := MinMaxScale(nil); len(got) != 0 {
		t.Errorf("empty input should stay empty, got %v", got)
	}
}
