package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/carlmjohnson/versioninfo"
	"github.com/go-spatial/geom"
	"github.com/iancoleman/strcase"
	"github.com/urfave/cli/v2"

	"github.com/pdok/zorder/geomhelp"
	"github.com/pdok/zorder/processing"
	"github.com/pdok/zorder/zorder"
)

const LON string = `lon`
const LAT string = `lat`
const CELL string = `cell`
const DIRECTION string = `direction`
const CHECKED string = `checked`
const LLLON string = `llLon`
const LLLAT string = `llLat`
const URLON string = `urLon`
const URLAT string = `urLat`
const RANGES string = `ranges`
const WKT string = `wkt`
const MAXCELLS string = `maxCells`
const INPUT string = `input`
const OUTPUT string = `output`
const OVERWRITE string = `overwrite`
const WORKERS string = `workers`

const stdio = "-"

// only the leading cells end up in the truncated log line
const logCells = 4

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

//nolint:funlen
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "zorder"
	app.Usage = "Z-order cell indices for lon/lat coordinates and windows"
	app.Version = versioninfo.Short()

	app.Commands = []*cli.Command{
		{
			Name:  "encode",
			Usage: "Print the cell index of a lon/lat coordinate",
			Flags: []cli.Flag{
				coordinateFlag(LON, "Longitude"),
				coordinateFlag(LAT, "Latitude"),
				checkedFlag(),
			},
			Action: encodeAction,
		},
		{
			Name:  "decode",
			Usage: "Print the centre and the extent of a cell",
			Flags: []cli.Flag{
				cellFlag(),
			},
			Action: decodeAction,
		},
		{
			Name:  "neighbor",
			Usage: "Print the adjacent cell in a direction",
			Flags: []cli.Flag{
				cellFlag(),
				&cli.StringFlag{
					Name:    DIRECTION,
					Aliases: []string{"d"},
					Usage:   "north, east, south or west. Without it all four are printed, in that order",
					EnvVars: []string{strcase.ToScreamingSnake(DIRECTION)},
				},
				checkedFlag(),
			},
			Action: neighborAction,
		},
		{
			Name:  "decompose",
			Usage: "Print every cell intersecting a window, one per line",
			Flags: []cli.Flag{
				coordinateFlag(LLLON, "Longitude of the lower-left corner"),
				coordinateFlag(LLLAT, "Latitude of the lower-left corner"),
				coordinateFlag(URLON, "Longitude of the upper-right corner"),
				coordinateFlag(URLAT, "Latitude of the upper-right corner"),
				&cli.BoolFlag{
					Name:    RANGES,
					Aliases: []string{"r"},
					Usage:   "Print runs of consecutive cells as 'first last' instead of every cell",
					EnvVars: []string{strcase.ToScreamingSnake(RANGES)},
				},
				&cli.BoolFlag{
					Name:    WKT,
					Usage:   "Print the cell footprints as WKT polygons",
					EnvVars: []string{strcase.ToScreamingSnake(WKT)},
				},
				checkedFlag(),
				maxCellsFlag(),
			},
			Action: decomposeAction,
		},
		{
			Name:  "batch",
			Usage: "Decompose JSON-lines windows {\"id\", \"ll\", \"ur\", ...} into JSON-lines results",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    INPUT,
					Aliases: []string{"i"},
					Usage:   "JSON-lines file with windows, - for stdin",
					Value:   stdio,
					EnvVars: []string{strcase.ToScreamingSnake(INPUT)},
				},
				&cli.StringFlag{
					Name:    OUTPUT,
					Aliases: []string{"o"},
					Usage:   "JSON-lines file for the results, - for stdout",
					Value:   stdio,
					EnvVars: []string{strcase.ToScreamingSnake(OUTPUT)},
				},
				&cli.BoolFlag{
					Name:    OVERWRITE,
					Usage:   "Overwrite the output file if it exists",
					EnvVars: []string{strcase.ToScreamingSnake(OVERWRITE)},
				},
				&cli.IntFlag{
					Name:    WORKERS,
					Aliases: []string{"w"},
					Usage:   "Number of windows decomposed concurrently",
					Value:   processing.NewConfig().Workers,
					EnvVars: []string{strcase.ToScreamingSnake(WORKERS)},
				},
				checkedFlag(),
				maxCellsFlag(),
			},
			Action: batchAction,
		},
	}
	return app
}

func coordinateFlag(name, usage string) *cli.Float64Flag {
	return &cli.Float64Flag{
		Name:     name,
		Usage:    usage,
		Required: true,
		EnvVars:  []string{strcase.ToScreamingSnake(name)},
	}
}

func checkedFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    CHECKED,
		Aliases: []string{"c"},
		Usage:   "Reject coordinates outside [-180,180]x[-90,90] (and inverted windows) instead of clamping them",
		EnvVars: []string{strcase.ToScreamingSnake(CHECKED)},
	}
}

func maxCellsFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    MAXCELLS,
		Aliases: []string{"m"},
		Usage:   "Refuse windows covering more cells than this",
		Value:   processing.NewConfig().MaxCells,
		EnvVars: []string{strcase.ToScreamingSnake(MAXCELLS)},
	}
}

func cellFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     CELL,
		Aliases:  []string{"z"},
		Usage:    "Cell index, decimal or 0x-prefixed hexadecimal",
		Required: true,
		EnvVars:  []string{strcase.ToScreamingSnake(CELL)},
	}
}

func parseCell(s string) (zorder.CellIndex, error) {
	z, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid cell index %q: %w", s, err)
	}
	return zorder.CellIndex(z), nil
}

func printCell(w io.Writer, z zorder.CellIndex) {
	_, _ = fmt.Fprintf(w, "%d\t%s\n", uint32(z), z)
}

func encodeAction(c *cli.Context) error {
	lon, lat := c.Float64(LON), c.Float64(LAT)
	z := zorder.Encode(lon, lat)
	if c.Bool(CHECKED) {
		var err error
		if z, err = zorder.EncodeChecked(lon, lat); err != nil {
			return err
		}
	}
	printCell(c.App.Writer, z)
	return nil
}

func decodeAction(c *cli.Context) error {
	z, err := parseCell(c.String(CELL))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(c.App.Writer, geomhelp.WktMustEncode(zorder.DecodePoint(z), 0))
	_, _ = fmt.Fprintln(c.App.Writer, geomhelp.WktMustEncode(geomhelp.CellPolygon(z), 0))
	return nil
}

func neighborAction(c *cli.Context) error {
	z, err := parseCell(c.String(CELL))
	if err != nil {
		return err
	}
	if !c.IsSet(DIRECTION) {
		neighbors := zorder.Neighbors(z)
		if c.Bool(CHECKED) {
			for i, d := range []zorder.Direction{zorder.North, zorder.East, zorder.South, zorder.West} {
				if neighbors[i], err = zorder.CheckedNeighbor(z, d); err != nil {
					return err
				}
			}
		}
		for _, neighbor := range neighbors {
			printCell(c.App.Writer, neighbor)
		}
		return nil
	}

	d, err := zorder.ParseDirection(c.String(DIRECTION))
	if err != nil {
		return err
	}
	neighbor := zorder.Neighbor(z, d)
	if c.Bool(CHECKED) {
		if neighbor, err = zorder.CheckedNeighbor(z, d); err != nil {
			return err
		}
	}
	printCell(c.App.Writer, neighbor)
	return nil
}

func decomposeAction(c *cli.Context) error {
	cfg := processing.Config{
		Workers:  1,
		MaxCells: c.Int(MAXCELLS),
		Checked:  c.Bool(CHECKED),
	}
	if err := cfg.Complete(); err != nil {
		return err
	}
	window := processing.Window{
		LL: geom.Point{c.Float64(LLLON), c.Float64(LLLAT)},
		UR: geom.Point{c.Float64(URLON), c.Float64(URLAT)},
	}
	result := processing.DecomposeWindow(window, cfg)
	if result.Err != nil {
		return result.Err
	}

	w := bufio.NewWriter(c.App.Writer)
	switch {
	case c.Bool(WKT):
		for _, z := range result.Cells {
			_, _ = fmt.Fprintln(w, geomhelp.WktMustEncode(geomhelp.CellPolygon(z), 0))
		}
	case c.Bool(RANGES):
		for _, r := range result.Ranges {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", r.First, r.Last, r.Len())
		}
	default:
		for _, z := range result.Cells {
			printCell(w, z)
		}
	}
	log.Printf("%d cells in %d ranges: %s", len(result.Cells), len(result.Ranges),
		geomhelp.WktMustEncodeCells(result.Cells[:min(len(result.Cells), logCells)], 80))
	return w.Flush()
}

func batchAction(c *cli.Context) error {
	cfg := processing.Config{
		Workers:  c.Int(WORKERS),
		MaxCells: c.Int(MAXCELLS),
		Checked:  c.Bool(CHECKED),
	}

	in := c.App.Reader
	if c.String(INPUT) != stdio {
		f, err := os.Open(c.String(INPUT))
		if err != nil {
			return fmt.Errorf("error opening input: %w", err)
		}
		defer f.Close()
		in = f
	}
	out := c.App.Writer
	if c.String(OUTPUT) != stdio {
		f, err := createOutput(c.String(OUTPUT), c.Bool(OVERWRITE))
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	source := processing.NewJSONLinesSource(in)
	target := processing.NewJSONLinesTarget(out)

	log.Println("=== start decomposing ===")
	if _, err := processing.ProcessWindows(source, target, cfg); err != nil {
		return err
	}
	if err := errors.Join(source.Err(), target.Err()); err != nil {
		return err
	}
	if skipped := source.Skipped(); skipped > 0 {
		log.Printf("  skipped %d unreadable lines", skipped)
	}
	log.Println("=== done decomposing ===")
	return nil
}

func createOutput(name string, overwrite bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(name, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("output %s exists, use --%s to replace it", name, OVERWRITE)
	}
	if err != nil {
		return nil, fmt.Errorf("error creating output: %w", err)
	}
	return f, nil
}
