// Package processing takes care of the logistics around decomposing a batch of windows:
// reading them from a Source, fanning them out over workers and writing them to a Target
// in their original order. The decomposition itself lives in package zorder.
package processing

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/pdok/zorder/mapslicehelp"
	"github.com/pdok/zorder/zorder"
)

// ErrWindowTooLarge is set on a Result whose window covers more than Config.MaxCells cells.
var ErrWindowTooLarge = errors.New("window too large")

// Summary holds the number of cells per window ID, in input order.
// Windows that could not be decomposed count 0.
type Summary = orderedmap.OrderedMap[string, int]

type job struct {
	seq    int
	window Window
}

type sequencedResult struct {
	seq    int
	result Result
}

// readWindowsFromSource numbers the windows, IDs default to their 1-based position
func readWindowsFromSource(source Source, jobs chan<- job) {
	windows := make(chan Window)
	go source.ReadWindows(windows)
	seq := 0
	for window := range windows {
		if window.ID == "" {
			window.ID = strconv.Itoa(seq + 1)
		}
		jobs <- job{seq: seq, window: window}
		seq++
	}
	close(jobs)
}

// decomposeWindows runs until jobs is closed
func decomposeWindows(jobs <-chan job, results chan<- sequencedResult, cfg Config) {
	for j := range jobs {
		results <- sequencedResult{seq: j.seq, result: DecomposeWindow(j.window, cfg)}
	}
}

// writeResultsToTarget puts the results back in input order before handing them to the target
func writeResultsToTarget(results <-chan sequencedResult, target Target) *Summary {
	summary := orderedmap.New[string, int]()
	ordered := make(chan Result)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		target.WriteResults(ordered)
	}()

	pending := make(map[int]Result)
	next := 0
	for r := range results {
		pending[r.seq] = r.result
		for {
			result, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			summary.Set(result.ID, len(result.Cells))
			ordered <- result
			next++
		}
	}
	close(ordered)
	wg.Wait()
	return summary
}

// DecomposeWindow decomposes a single window according to cfg.
// Failures end up in Result.Err, they never stop a batch.
func DecomposeWindow(window Window, cfg Config) Result {
	result := Result{Window: window}
	llLon, llLat := window.LL.X(), window.LL.Y()
	urLon, urLat := window.UR.X(), window.UR.Y()

	// checked before sizing, an inverted window wraps around the grid and is huge
	if cfg.Checked {
		if err := zorder.CheckWindow(llLon, llLat, urLon, urLat); err != nil {
			result.Err = err
			return result
		}
	}
	if size := zorder.WindowSize(llLon, llLat, urLon, urLat); size > cfg.MaxCells {
		result.Err = fmt.Errorf("%w: %d cells, max %d", ErrWindowTooLarge, size, cfg.MaxCells)
		return result
	}

	result.Cells = zorder.DecomposeExtent(window.Extent())
	result.Ranges = zorder.Ranges(result.Cells)
	return result
}

// ProcessWindows decomposes every window of the source and writes the results to the target.
func ProcessWindows(source Source, target Target, cfg Config) (*Summary, error) {
	if err := cfg.Complete(); err != nil {
		return nil, err
	}
	jobs := make(chan job)
	results := make(chan sequencedResult)

	go readWindowsFromSource(source, jobs)

	workers := sync.WaitGroup{}
	for i := 0; i < cfg.Workers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			decomposeWindows(jobs, results, cfg)
		}()
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	summary := writeResultsToTarget(results, target)

	largestID, largestCells, ties := mapslicehelp.LastMax(summary)
	log.Printf("    total windows: %d", summary.Len())
	log.Printf("      total cells: %d", mapslicehelp.SumVals(summary))
	log.Printf(" windows w/o cells: %d", mapslicehelp.CountFunc(summary, func(cells int) bool { return cells == 0 }))
	if ties > 1 {
		log.Printf("   largest window: %s (%d cells, shared with %d others)", largestID, largestCells, ties-1)
	} else if ties == 1 {
		log.Printf("   largest window: %s (%d cells)", largestID, largestCells)
	}
	return summary, nil
}
