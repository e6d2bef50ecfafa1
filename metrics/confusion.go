package metrics

import (
	"fmt"
	"sort"
	"strings"
)

// ConfusionMatrix holds classification counts indexed [true class][predicted
// class], with Classes giving the label value of each index in ascending
// order.
type ConfusionMatrix struct {
	Classes []float64
	Counts  [][]int
	Total   int
}

// Classes returns the sorted distinct values in y.
func Classes(y []float64) []float64 {
	seen := make(map[float64]bool)
	var classes []float64
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Float64s(classes)
	return classes
}

// NewConfusionMatrix builds a confusion matrix from true and predicted
// labels. The class set is the union of both.
func NewConfusionMatrix(yTrue, yPred []float64) (*ConfusionMatrix, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("confusion: %d true labels for %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return nil, fmt.Errorf("confusion: no labels")
	}

	all := make([]float64, 0, 2*len(yTrue))
	all = append(all, yTrue...)
	all = append(all, yPred...)
	classes := Classes(all)

	index := make(map[float64]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	counts := make([][]int, len(classes))
	for i := range counts {
		counts[i] = make([]int, len(classes))
	}
	for i := range yTrue {
		counts[index[yTrue[i]]][index[yPred[i]]]++
	}

	return &ConfusionMatrix{
		Classes: classes,
		Counts:  counts,
		Total:   len(yTrue),
	}, nil
}

// Accuracy returns the fraction of diagonal counts.
func (cm *ConfusionMatrix) Accuracy() float64 {
	if cm.Total == 0 {
		return 0
	}
	correct := 0
	for i := range cm.Counts {
		correct += cm.Counts[i][i]
	}
	return float64(correct) / float64(cm.Total)
}

// String renders the matrix row per true class for logging.
func (cm *ConfusionMatrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, row := range cm.Counts {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprint(row))
	}
	sb.WriteString("]")
	return sb.String()
}
