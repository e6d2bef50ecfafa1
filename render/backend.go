// Package render persists rendered figures. Each figure is tagged with the
// backend that produced it; the writer derives a deterministic output path
// from the model configuration and delegates saving to the figure itself.
package render

import (
	"errors"
	"fmt"
)

// Backend identifies the rendering library that produced a figure.
type Backend int

const (
	// General is the general-purpose plotting backend (gonum/plot).
	General Backend = iota
	// Stat is the statistical-visualization backend (go-chart).
	Stat
	// Interactive is the interactive-charting backend (go-echarts).
	Interactive
	// Declarative is recognized but has no figure implementation wired
	// up; writing a declarative figure fails with ErrUnsupportedBackend.
	Declarative
)

func (b Backend) String() string {
	switch b {
	case General:
		return "general"
	case Stat:
		return "stat"
	case Interactive:
		return "interactive"
	case Declarative:
		return "declarative"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ErrUnsupportedBackend is returned for a backend that is recognized but
// not wired up.
var ErrUnsupportedBackend = errors.New("unsupported visualization backend")

// ErrUnrecognizedBackend is returned for a backend value outside the
// recognized set.
var ErrUnrecognizedBackend = errors.New("unrecognized visualization backend")

// Figure is a rendered plot ready to be persisted. Implementations carry
// their own save capability so the writer never re-inspects library names.
type Figure interface {
	Backend() Backend
	Save(path string) error
}
