package processing

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log"
)

const maxLineSize = 16 * 1024 * 1024

// JSONLinesSource reads one window object per line. Blank lines are ignored,
// lines that are not a window are logged and skipped.
type JSONLinesSource struct {
	r       io.Reader
	skipped int
	err     error
}

func NewJSONLinesSource(r io.Reader) *JSONLinesSource {
	return &JSONLinesSource{r: r}
}

func (s *JSONLinesSource) ReadWindows(windows chan<- Window) {
	defer close(windows)
	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var window Window
		if err := json.Unmarshal(line, &window); err != nil {
			log.Printf("skipping line %d: %v", lineNo, err)
			s.skipped++
			continue
		}
		windows <- window
	}
	s.err = scanner.Err()
}

// Skipped is the number of lines that could not be read as a window.
func (s *JSONLinesSource) Skipped() int {
	return s.skipped
}

// Err returns the read error that ended ReadWindows early, if any.
func (s *JSONLinesSource) Err() error {
	return s.err
}

// JSONLinesTarget writes one result object per line.
type JSONLinesTarget struct {
	w   io.Writer
	err error
}

func NewJSONLinesTarget(w io.Writer) *JSONLinesTarget {
	return &JSONLinesTarget{w: w}
}

func (t *JSONLinesTarget) WriteResults(results <-chan Result) {
	bw := bufio.NewWriter(t.w)
	encoder := json.NewEncoder(bw)
	for result := range results {
		if t.err != nil {
			continue // drain
		}
		t.err = encoder.Encode(result)
	}
	if t.err == nil {
		t.err = bw.Flush()
	}
}

// Err returns the first write error, if any.
func (t *JSONLinesTarget) Err() error {
	return t.err
}
