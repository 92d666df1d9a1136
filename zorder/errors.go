package zorder

import (
	"errors"
	"fmt"
)

const packageName = "zorder: "

var (
	// ErrOutOfDomainCoordinate is returned by the checked functions for a longitude outside
	// [-180, 180], a latitude outside [-90, 90] or NaN.
	ErrOutOfDomainCoordinate = errors.New("coordinate out of domain")
	// ErrInvertedRectangle is returned by DecomposeChecked when the lower-left corner
	// lies east or north of the upper-right corner.
	ErrInvertedRectangle = errors.New("inverted rectangle")
	// ErrBoundaryNeighborOverflow is returned by CheckedNeighbor for a step off the grid edge.
	ErrBoundaryNeighborOverflow = errors.New("neighbor outside grid")
)

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
