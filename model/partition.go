package model

import (
	"errors"
	"fmt"
)

// Partition selects which stored split of features and labels a plot is
// computed over.
type Partition int

const (
	Train Partition = iota
	Test
)

// ErrInvalidPartition is returned when a partition is not train or test.
var ErrInvalidPartition = errors.New("partition must be train or test")

func (p Partition) String() string {
	switch p {
	case Train:
		return "train"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("partition(%d)", int(p))
	}
}

// Valid reports whether p is one of the two recognized partitions.
func (p Partition) Valid() bool {
	return p == Train || p == Test
}

// ParsePartition converts a partition name to its enum value. Anything other
// than "train" or "test" fails with ErrInvalidPartition.
func ParsePartition(s string) (Partition, error) {
	switch s {
	case "train":
		return Train, nil
	case "test":
		return Test, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPartition, s)
	}
}
