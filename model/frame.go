package model

import "fmt"

// Frame is a small ordered column table backing the EDA plots. Columns are
// either numeric or categorical; all columns share one length.
type Frame struct {
	n       int
	order   []string
	numeric map[string][]float64
	labels  map[string][]string
}

// NewFrame creates a frame whose columns must all have n rows.
func NewFrame(n int) *Frame {
	return &Frame{
		n:       n,
		numeric: make(map[string][]float64),
		labels:  make(map[string][]string),
	}
}

// Len returns the row count.
func (f *Frame) Len() int { return f.n }

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// AddNumeric adds a numeric column.
func (f *Frame) AddNumeric(name string, values []float64) error {
	if err := f.checkAdd(name, len(values)); err != nil {
		return err
	}
	f.numeric[name] = values
	f.order = append(f.order, name)
	return nil
}

// AddLabels adds a categorical column.
func (f *Frame) AddLabels(name string, values []string) error {
	if err := f.checkAdd(name, len(values)); err != nil {
		return err
	}
	f.labels[name] = values
	f.order = append(f.order, name)
	return nil
}

func (f *Frame) checkAdd(name string, n int) error {
	if n != f.n {
		return fmt.Errorf("column %q has %d rows, frame has %d", name, n, f.n)
	}
	if _, ok := f.numeric[name]; ok {
		return fmt.Errorf("column %q already exists", name)
	}
	if _, ok := f.labels[name]; ok {
		return fmt.Errorf("column %q already exists", name)
	}
	return nil
}

// Numeric returns a numeric column by name.
func (f *Frame) Numeric(name string) ([]float64, error) {
	col, ok := f.numeric[name]
	if !ok {
		return nil, fmt.Errorf("no numeric column %q", name)
	}
	return col, nil
}

// Labels returns a categorical column by name.
func (f *Frame) Labels(name string) ([]string, error) {
	col, ok := f.labels[name]
	if !ok {
		return nil, fmt.Errorf("no categorical column %q", name)
	}
	return col, nil
}

// Levels returns the distinct values of a categorical column in first-seen
// order.
func (f *Frame) Levels(name string) ([]string, error) {
	col, err := f.Labels(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var levels []string
	for _, v := range col {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	return levels, nil
}
