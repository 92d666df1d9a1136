package processing

import (
	"encoding/json"

	"github.com/go-spatial/geom"
	"github.com/perimeterx/marshmallow"

	"github.com/pdok/zorder/zorder"
)

// Window is one query window of a batch.
// Properties holds whatever else the input record carried, it is echoed in the Result.
type Window struct {
	ID         string         `json:"id"`
	LL         geom.Point     `json:"ll"`
	UR         geom.Point     `json:"ur"`
	Properties map[string]any `json:"-"`
}

func (w *Window) UnmarshalJSON(data []byte) error {
	type plainWindow Window // no UnmarshalJSON, avoids recursion
	var plain plainWindow
	properties, err := marshmallow.Unmarshal(data, &plain, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return err
	}
	*w = Window(plain)
	if len(properties) > 0 {
		w.Properties = properties
	}
	return nil
}

// Extent is the window as minLon, minLat, maxLon, maxLat. The corners are taken as given,
// an inverted window stays inverted.
func (w Window) Extent() geom.Extent {
	return geom.Extent{w.LL.X(), w.LL.Y(), w.UR.X(), w.UR.Y()}
}

// Result is a Window with its cells, or with the reason it has none.
type Result struct {
	Window
	Cells  []zorder.CellIndex
	Ranges []zorder.Range
	Err    error
}

func (r Result) MarshalJSON() ([]byte, error) {
	record := make(map[string]any, len(r.Properties)+5)
	for k, v := range r.Properties {
		record[k] = v
	}
	record["id"] = r.ID
	record["ll"] = r.LL
	record["ur"] = r.UR
	if r.Err != nil {
		record["error"] = r.Err.Error()
		return json.Marshal(record)
	}
	record["cells"] = r.Cells
	ranges := make([][2]zorder.CellIndex, len(r.Ranges))
	for i, rng := range r.Ranges {
		ranges[i] = [2]zorder.CellIndex{rng.First, rng.Last}
	}
	record["ranges"] = ranges
	return json.Marshal(record)
}
