package geomhelp

import (
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/muesli/reflow/truncate"

	"github.com/pdok/zorder/zorder"
)

// CellPolygon returns the footprint of a cell as a single ring, starting at its south-west corner:
// (minx,miny), (maxx,miny), (maxx,maxy), (minx,maxy)
func CellPolygon(z zorder.CellIndex) geom.Polygon {
	extent := zorder.CellExtent(z)
	return geom.Polygon{extent.Vertices()}
}

func CellsMultiPolygon(cells []zorder.CellIndex) geom.MultiPolygon {
	mp := make(geom.MultiPolygon, len(cells))
	for i, z := range cells {
		mp[i] = CellPolygon(z)
	}
	return mp
}

// WktMustEncode encodes g as WKT, truncated to maxLen (0 means no limit).
func WktMustEncode(g geom.Geometry, maxLen uint) string {
	if maxLen == 0 {
		return wkt.MustEncode(g)
	}
	return truncate.StringWithTail(wkt.MustEncode(g), maxLen, "...")
}

func WktMustEncodeCells(cells []zorder.CellIndex, maxLen uint) string {
	if len(cells) == 1 {
		return WktMustEncode(CellPolygon(cells[0]), maxLen)
	}
	return WktMustEncode(CellsMultiPolygon(cells), maxLen)
}
