package zorder

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/go-spatial/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name                       string
		llLon, llLat, urLon, urLat float64
		want                       []CellIndex
	}{
		{
			name:  "single cell",
			llLon: 4.9, llLat: 52.37, urLon: 4.9, urLat: 52.37,
			want: []CellIndex{0xD04E3FE5},
		},
		{
			name:  "window inside a single cell",
			llLon: LonStep / 4, llLat: LatStep / 4, urLon: LonStep / 2, urLat: LatStep / 2,
			want: []CellIndex{0xC0000000},
		},
		{
			name:  "2x2 block north-east of the origin",
			llLon: 0, llLat: 0, urLon: LonStep, urLat: LatStep,
			want: []CellIndex{0xC0000000, 0xC0000001, 0xC0000002, 0xC0000003},
		},
		{
			name:  "4 columns by 3 rows",
			llLon: 0, llLat: 0, urLon: 3 * LonStep, urLat: 2 * LatStep,
			want: []CellIndex{
				0xC0000000, 0xC0000001, 0xC0000002, 0xC0000003, 0xC0000004, 0xC0000006,
				0xC0000008, 0xC0000009, 0xC000000A, 0xC000000B, 0xC000000C, 0xC000000E,
			},
		},
		{
			name:  "single column",
			llLon: 0, llLat: 0, urLon: 0, urLat: 2 * LatStep,
			want: []CellIndex{0xC0000000, 0xC0000001, 0xC0000004},
		},
		{
			name:  "single row",
			llLon: 0, llLat: 0, urLon: 2 * LonStep, urLat: 0,
			want: []CellIndex{0xC0000000, 0xC0000002, 0xC0000008},
		},
		{
			name:  "lower-left corner of the domain",
			llLon: -180, llLat: -90, urLon: -180 + LonStep, urLat: -90 + LatStep,
			want: []CellIndex{0, 1, 2, 3},
		},
		{
			// 180 falls in the last column, like 180 - LonStep
			name:  "upper-right corner of the domain",
			llLon: 180 - LonStep, llLat: 90 - LatStep, urLon: 180, urLat: 90,
			want: []CellIndex{0xFFFFFFFF},
		},
		{
			name:  "two rows below the north-east corner",
			llLon: 180 - LonStep, llLat: 90 - 2*LatStep, urLon: 180, urLat: 90,
			want: []CellIndex{0xFFFFFFFE, 0xFFFFFFFF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(tt.llLon, tt.llLat, tt.urLon, tt.urLat)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), WindowSize(tt.llLon, tt.llLat, tt.urLon, tt.urLat))
		})
	}
}

func TestDecompose_singletonWindow(t *testing.T) {
	for _, pt := range [][2]float64{{0, 0}, {-180, -90}, {180, 90}, {4.9, 52.37}, {-70.66, -33.45}} {
		assert.Equal(t, []CellIndex{Encode(pt[0], pt[1])}, Decompose(pt[0], pt[1], pt[0], pt[1]))
	}
}

func TestDecompose_matchesNeighborWalk(t *testing.T) {
	// enumerate a 2x2 block with neighbour steps from its lower-left cell
	start := Encode(0, 0)
	want := []CellIndex{start, NeighborNorth(start), NeighborEast(start), NeighborNorth(NeighborEast(start))}
	slices.Sort(want)
	assert.Equal(t, want, Decompose(0, 0, LonStep, LatStep))
}

func TestDecompose_sortedUniqueAndComplete(t *testing.T) {
	windows := [][4]float64{
		{4.9, 52.37, 4.92, 52.38},
		{-0.01, -0.01, 0.01, 0.01},
		{-70.7, -33.5, -70.6, -33.4},
		{179.9, 89.9, 180, 90},
		{-180, -90, -179.95, -89.97},
	}
	for _, w := range windows {
		t.Run(fmt.Sprint(w), func(t *testing.T) {
			got := Decompose(w[0], w[1], w[2], w[3])
			require.NotEmpty(t, got)
			require.Equal(t, WindowSize(w[0], w[1], w[2], w[3]), len(got))
			for i := 1; i < len(got); i++ {
				require.Less(t, uint32(got[i-1]), uint32(got[i]), "not strictly ascending at %d", i)
			}

			// every cell touches the window, and the corners are in
			window := geom.Extent{w[0], w[1], w[2], w[3]}
			for _, z := range got {
				cell := CellExtent(z)
				require.Truef(t, cell.MinX() <= window.MaxX() && window.MinX() < cell.MaxX(), "cell %v lon outside window", z)
				require.Truef(t, cell.MinY() <= window.MaxY() && window.MinY() < cell.MaxY(), "cell %v lat outside window", z)
			}
			_, found := slices.BinarySearch(got, Encode(w[0], w[1]))
			assert.True(t, found)
			_, found = slices.BinarySearch(got, Encode(w[2], w[3]))
			assert.True(t, found)
			_, found = slices.BinarySearch(got, Encode(w[0], w[3]))
			assert.True(t, found)
			_, found = slices.BinarySearch(got, Encode(w[2], w[1]))
			assert.True(t, found)
		})
	}
}

func TestDecompose_fullGridHeight(t *testing.T) {
	// the northern sentinel wraps onto the first row here
	got := Decompose(0, -90, LonStep, 90)
	require.Len(t, got, 2*GridSize)
	assert.Equal(t, 2*GridSize, WindowSize(0, -90, LonStep, 90))
	for i := 1; i < len(got); i++ {
		require.Less(t, uint32(got[i-1]), uint32(got[i]))
	}
}

func TestDecompose_fullGridWidth(t *testing.T) {
	got := Decompose(-180, 0, 180, 0)
	require.Len(t, got, GridSize)
	for _, z := range got {
		require.Equal(t, uint16(32768), ToGrid(z).Col)
	}
}

func TestDecompose_invertedByOneCell(t *testing.T) {
	tests := []struct {
		name                       string
		llLon, llLat, urLon, urLat float64
	}{
		{name: "one row", llLon: 0, llLat: LatStep, urLon: LonStep, urLat: 0},
		{name: "one column", llLon: LonStep, llLat: 0, urLon: 0, urLat: LatStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the sentinel equals the start cell, so the walk wraps around the whole grid
			got := Decompose(tt.llLon, tt.llLat, tt.urLon, tt.urLat)
			require.Len(t, got, 2*GridSize)
			assert.Equal(t, len(got), WindowSize(tt.llLon, tt.llLat, tt.urLon, tt.urLat))
			assert.Contains(t, got, Encode(tt.llLon, tt.llLat))
			assert.Contains(t, got, Encode(tt.urLon, tt.urLat))

			_, err := DecomposeChecked(tt.llLon, tt.llLat, tt.urLon, tt.urLat)
			assert.ErrorIs(t, err, ErrInvertedRectangle)
		})
	}
}

func TestDecomposeExtent(t *testing.T) {
	e := geom.Extent{0, 0, 3 * LonStep, 2 * LatStep}
	assert.Equal(t, Decompose(0, 0, 3*LonStep, 2*LatStep), DecomposeExtent(e))
}

func TestDecomposeChecked(t *testing.T) {
	tests := []struct {
		name                       string
		llLon, llLat, urLon, urLat float64
		wantErr                    error
	}{
		{name: "valid", llLon: 0, llLat: 0, urLon: LonStep, urLat: LatStep},
		{name: "whole corner cell", llLon: -180, llLat: -90, urLon: -180, urLat: -90},
		{name: "lower-left out of domain", llLon: -181, llLat: 0, urLon: 0, urLat: 0, wantErr: ErrOutOfDomainCoordinate},
		{name: "upper-right out of domain", llLon: 0, llLat: 0, urLon: 0, urLat: 91, wantErr: ErrOutOfDomainCoordinate},
		{name: "NaN corner", llLon: math.NaN(), llLat: 0, urLon: 0, urLat: 0, wantErr: ErrOutOfDomainCoordinate},
		{name: "inverted longitude", llLon: 1, llLat: 0, urLon: 0, urLat: 1, wantErr: ErrInvertedRectangle},
		{name: "inverted latitude", llLon: 0, llLat: 1, urLon: 1, urLat: 0, wantErr: ErrInvertedRectangle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecomposeChecked(tt.llLon, tt.llLat, tt.urLon, tt.urLat)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Decompose(tt.llLon, tt.llLat, tt.urLon, tt.urLat), got)
		})
	}
}

func TestWindowSize_inverted(t *testing.T) {
	// an inverted window is not detected: the walk wraps around the grid
	assert.Equal(t, 2*GridSize, WindowSize(LonStep, 0, 0, LatStep))
}
