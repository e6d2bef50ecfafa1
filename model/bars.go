package model

import (
	"fmt"
	"time"
)

// Bars holds an OHLCV price series for the financial charts, struct-of-slices
// so a window is a cheap reslice.
type Bars struct {
	Time []time.Time

	Open, High, Low, Close []float64

	Volume []float64
}

// Len returns the number of bars.
func (b Bars) Len() int { return len(b.Time) }

// Validate checks that all slices share one length. Volume may be empty.
func (b Bars) Validate() error {
	n := len(b.Time)
	if len(b.Open) != n || len(b.High) != n || len(b.Low) != n || len(b.Close) != n {
		return fmt.Errorf("bars: OHLC lengths %d/%d/%d/%d do not match %d timestamps",
			len(b.Open), len(b.High), len(b.Low), len(b.Close), n)
	}
	if len(b.Volume) != 0 && len(b.Volume) != n {
		return fmt.Errorf("bars: %d volumes for %d timestamps", len(b.Volume), n)
	}
	return nil
}

// Slice returns bars [i0, i1), clamped to the valid range.
func (b Bars) Slice(i0, i1 int) Bars {
	if i0 < 0 {
		i0 = 0
	}
	if i1 > b.Len() {
		i1 = b.Len()
	}
	if i0 >= i1 {
		return Bars{}
	}
	out := Bars{
		Time:  b.Time[i0:i1],
		Open:  b.Open[i0:i1],
		High:  b.High[i0:i1],
		Low:   b.Low[i0:i1],
		Close: b.Close[i0:i1],
	}
	if len(b.Volume) == b.Len() {
		out.Volume = b.Volume[i0:i1]
	}
	return out
}
