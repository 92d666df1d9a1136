package zorder

import (
	"math"
	"strconv"
	"strings"

	"github.com/pdok/zorder/morton"
)

// GridCoordinate is a CellIndex de-interleaved with the standard 2D Morton decode.
//
// Col holds the even bits and Row the odd bits. The bisection in Encode puts the
// latitude bits at the even positions, so Col counts latitude cells from the south
// and Row counts longitude cells from the west. The Z-order lattice is rotated with
// respect to a row-major (N-shaped) grid, which is why north is Col+1 and east is Row+1.
type GridCoordinate struct {
	Col uint16
	Row uint16
}

// ToGrid de-interleaves z.
func ToGrid(z CellIndex) GridCoordinate {
	col, row := morton.Decode2D(uint32(z))
	return GridCoordinate{Col: col, Row: row}
}

// FromGrid interleaves g back into a CellIndex.
func FromGrid(g GridCoordinate) CellIndex {
	return CellIndex(morton.Encode2D(g.Col, g.Row))
}

type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"north", "east", "south", "west"}

func (d Direction) String() string {
	if d < North || d > West {
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
	return directionNames[d]
}

// ParseDirection accepts the direction names case-insensitively, or their first letter.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return Direction(d), nil
		}
	}
	return 0, fmtErr("unknown direction %q", s)
}

// The neighbour functions below wrap around the grid edge (toroidally): the cell north of
// the northernmost row is in the southernmost row, and so on. Use CheckedNeighbor to
// reject such steps instead.

// NeighborNorth returns the cell one latitude step north of z.
func NeighborNorth(z CellIndex) CellIndex {
	g := ToGrid(z)
	g.Col++
	return FromGrid(g)
}

// NeighborEast returns the cell one longitude step east of z.
func NeighborEast(z CellIndex) CellIndex {
	g := ToGrid(z)
	g.Row++
	return FromGrid(g)
}

// NeighborSouth returns the cell one latitude step south of z.
func NeighborSouth(z CellIndex) CellIndex {
	g := ToGrid(z)
	g.Col--
	return FromGrid(g)
}

// NeighborWest returns the cell one longitude step west of z.
func NeighborWest(z CellIndex) CellIndex {
	g := ToGrid(z)
	g.Row--
	return FromGrid(g)
}

// Neighbor returns the neighbour of z in direction d. It panics on an unknown direction.
func Neighbor(z CellIndex, d Direction) CellIndex {
	switch d {
	case North:
		return NeighborNorth(z)
	case East:
		return NeighborEast(z)
	case South:
		return NeighborSouth(z)
	case West:
		return NeighborWest(z)
	}
	fmtPanic("unknown direction %d", int(d))
	return 0
}

// Neighbors returns the four neighbours of z, in the order north, east, south, west.
func Neighbors(z CellIndex) [4]CellIndex {
	return [4]CellIndex{NeighborNorth(z), NeighborEast(z), NeighborSouth(z), NeighborWest(z)}
}

// CheckedNeighbor is Neighbor without the wrap around: stepping off the grid
// fails with ErrBoundaryNeighborOverflow.
func CheckedNeighbor(z CellIndex, d Direction) (CellIndex, error) {
	g := ToGrid(z)
	var atEdge bool
	switch d {
	case North:
		atEdge = g.Col == math.MaxUint16
	case East:
		atEdge = g.Row == math.MaxUint16
	case South:
		atEdge = g.Col == 0
	case West:
		atEdge = g.Row == 0
	default:
		return 0, fmtErr("unknown direction %d", int(d))
	}
	if atEdge {
		return 0, wrapErr("%v of %v", ErrBoundaryNeighborOverflow, d, z)
	}
	return Neighbor(z, d), nil
}
