package zorder

import (
	"slices"

	"github.com/go-spatial/geom"
)

// Decompose returns every cell intersecting the window with lower-left corner (llLon, llLat)
// and upper-right corner (urLon, urLat), sorted ascending and without duplicates.
//
// The window is walked in grid order, column by column from the lower-left cell, each column
// northwards until a rolling exclusive sentinel one cell past the top of the window.
// Corners outside the domain or an inverted window are not detected, see DecomposeChecked.
//
// The result is allocated up front at WindowSize cells, 4 bytes each. A window spanning the
// whole domain is 2^32 cells (16 GiB). An inverted window wraps around the grid and is
// at least GridSize cells.
// Callers decomposing untrusted windows cap WindowSize first.
func Decompose(llLon, llLat, urLon, urLat float64) []CellIndex {
	lowerLeft := Encode(llLon, llLat)
	upperRight := Encode(urLon, urLat)
	if lowerLeft == upperRight {
		return []CellIndex{lowerLeft}
	}

	northernBound := NeighborNorth(Encode(llLon, urLat))
	easternBound := NeighborEast(Encode(urLon, llLat))
	cells := make([]CellIndex, 0, windowSize(lowerLeft, upperRight))

	// Both walks visit before comparing with their sentinel. A window spanning the whole grid
	// height (or width) has its sentinel wrap onto the start cell, and still gets every cell.
	// So does a window inverted by exactly one row (or column): its sentinel is the start
	// cell as well, and the walk goes all the way around the grid.
	eastwards := lowerLeft
	for {
		northwards := eastwards
		for {
			cells = append(cells, northwards)
			northwards = NeighborNorth(northwards)
			if northwards == northernBound {
				break
			}
		}
		eastwards = NeighborEast(eastwards)
		northernBound = NeighborEast(northernBound)
		if eastwards == easternBound {
			break
		}
	}

	// column-major grid order is not curve order
	slices.Sort(cells)
	return cells
}

// DecomposeExtent decomposes a lon/lat extent (minx, miny, maxx, maxy).
func DecomposeExtent(e geom.Extent) []CellIndex {
	return Decompose(e.MinX(), e.MinY(), e.MaxX(), e.MaxY())
}

// DecomposeChecked is Decompose for untrusted windows, rejecting what CheckWindow rejects.
func DecomposeChecked(llLon, llLat, urLon, urLat float64) ([]CellIndex, error) {
	if err := CheckWindow(llLon, llLat, urLon, urLat); err != nil {
		return nil, err
	}
	return Decompose(llLon, llLat, urLon, urLat), nil
}

// CheckWindow requires both corners to be in the domain and the lower-left corner
// not to lie east or north of the upper-right corner.
func CheckWindow(llLon, llLat, urLon, urLat float64) error {
	if !InDomain(llLon, llLat) {
		return wrapErr("lower-left corner (%v, %v)", ErrOutOfDomainCoordinate, llLon, llLat)
	}
	if !InDomain(urLon, urLat) {
		return wrapErr("upper-right corner (%v, %v)", ErrOutOfDomainCoordinate, urLon, urLat)
	}
	if llLon > urLon || llLat > urLat {
		return wrapErr("(%v, %v) is not lower-left of (%v, %v)", ErrInvertedRectangle, llLon, llLat, urLon, urLat)
	}
	return nil
}

// WindowSize returns the number of cells Decompose returns for the same window,
// without enumerating them.
func WindowSize(llLon, llLat, urLon, urLat float64) int {
	return windowSize(Encode(llLon, llLat), Encode(urLon, urLat))
}

func windowSize(lowerLeft, upperRight CellIndex) int {
	ll := ToGrid(lowerLeft)
	ur := ToGrid(upperRight)
	// uint16 differences wrap like the neighbour walk does
	rows := int(ur.Col-ll.Col) + 1
	cols := int(ur.Row-ll.Row) + 1
	return rows * cols
}
