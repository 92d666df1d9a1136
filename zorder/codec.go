// Package zorder indexes geographic coordinates on a Z-order (Morton) curve.
//
// The curve covers a fixed 65536x65536 grid over lon [-180, 180] and lat [-90, 90].
// A cell is identified by a 32-bit CellIndex whose bits interleave longitude and
// latitude bisection steps, longitude first, most significant bit first:
//
//	bit  31   30   29   28  ...   1    0
//	    lon0 lat0 lon1 lat1 ... lon15 lat15
//
// Besides the codec the package offers grid neighbours of a cell and the
// decomposition of a query window into the sorted set of cells it touches.
// Everything here is pure and safe for concurrent use.
//
// The plain functions (Encode, Neighbor*, Decompose) trust their input, like a
// hot query path wants. Their checked counterparts fail fast with one of the
// Err* kinds instead of returning a wrong cell.
package zorder

import (
	"fmt"

	"github.com/go-spatial/geom"

	"github.com/pdok/zorder/mathhelp"
)

const (
	// Fidelity is the number of bits in a CellIndex.
	Fidelity = 32
	// AxisBits is the resolution per axis.
	AxisBits = Fidelity / 2
	// GridSize is the number of cells along one axis.
	GridSize = 1 << AxisBits

	MinLon = -180.0
	MaxLon = 180.0
	MinLat = -90.0
	MaxLat = 90.0

	// LonStep is the width of a cell in degrees.
	LonStep = (MaxLon - MinLon) / GridSize
	// LatStep is the height of a cell in degrees.
	LatStep = (MaxLat - MinLat) / GridSize
)

// CellIndex is the position of a cell on the Z-order curve.
type CellIndex uint32

func (z CellIndex) String() string {
	return fmt.Sprintf("0x%08x", uint32(z))
}

// interval is one axis' bounds while bisecting.
type interval struct {
	lower, upper float64
}

var (
	lonDomain = interval{MinLon, MaxLon}
	latDomain = interval{MinLat, MaxLat}
)

func (iv *interval) middle() float64 {
	return (iv.lower + iv.upper) / 2
}

// bisect keeps the half containing c and reports whether that is the upper half.
// c == middle goes up.
func (iv *interval) bisect(c float64) bool {
	middle := iv.middle()
	if c < middle {
		iv.upper = middle
		return false
	}
	iv.lower = middle
	return true
}

func (iv *interval) narrow(upperHalf bool) {
	middle := iv.middle()
	if upperHalf {
		iv.lower = middle
	} else {
		iv.upper = middle
	}
}

// Encode returns the index of the cell containing (lon, lat).
// Coordinates outside the domain are not detected, see EncodeChecked.
func Encode(lon, lat float64) CellIndex {
	lonBounds, latBounds := lonDomain, latDomain
	var z CellIndex
	for i := 0; i < AxisBits; i++ {
		z = z<<1 | CellIndex(mathhelp.Bool2int(lonBounds.bisect(lon)))
		z = z<<1 | CellIndex(mathhelp.Bool2int(latBounds.bisect(lat)))
	}
	return z
}

// EncodeChecked is Encode for untrusted coordinates.
func EncodeChecked(lon, lat float64) (CellIndex, error) {
	if !InDomain(lon, lat) {
		return 0, wrapErr("encoding (%v, %v)", ErrOutOfDomainCoordinate, lon, lat)
	}
	return Encode(lon, lat), nil
}

// EncodePoint encodes a lon/lat point.
func EncodePoint(pt geom.Point) CellIndex {
	return Encode(pt.X(), pt.Y())
}

// InDomain reports whether lon and lat are within the grid's coordinate domain.
func InDomain(lon, lat float64) bool {
	return mathhelp.BetweenInc(lon, MinLon, MaxLon) && mathhelp.BetweenInc(lat, MinLat, MaxLat)
}

// Decode returns the centre of cell z. This is not the coordinate that was encoded,
// but encoding it again yields z.
func Decode(z CellIndex) (lon, lat float64) {
	lonBounds, latBounds := cellBounds(z)
	return lonBounds.middle(), latBounds.middle()
}

// DecodePoint is Decode returning a lon/lat point.
func DecodePoint(z CellIndex) geom.Point {
	lon, lat := Decode(z)
	return geom.Point{lon, lat}
}

// CellExtent returns the footprint of cell z: minLon, minLat, maxLon, maxLat.
// Its centroid is Decode(z).
func CellExtent(z CellIndex) geom.Extent {
	lonBounds, latBounds := cellBounds(z)
	return geom.Extent{lonBounds.lower, latBounds.lower, lonBounds.upper, latBounds.upper}
}

func cellBounds(z CellIndex) (lonBounds, latBounds interval) {
	lonBounds, latBounds = lonDomain, latDomain
	for shift := Fidelity - 1; shift > 0; shift -= 2 {
		lonBounds.narrow(z>>shift&1 == 1)
		latBounds.narrow(z>>(shift-1)&1 == 1)
	}
	return lonBounds, latBounds
}
