// Package asciitable reads whitespace-separated numeric tables of the
// kind published alongside astrophysics papers: optional '#' comment
// lines followed by rows of float columns.
package asciitable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses a table from r and returns the requested columns, one
// slice per column index in the order given. With no columns specified
// every column of the first data row is returned. Blank lines and lines
// starting with '#' are skipped; every data row must carry enough
// fields for the requested columns.
func Read(r io.Reader, columns ...int) ([][]float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var out [][]float64
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if columns == nil {
			columns = make([]int, len(fields))
			for i := range columns {
				columns[i] = i
			}
		}
		if out == nil {
			out = make([][]float64, len(columns))
		}

		for i, col := range columns {
			if col >= len(fields) {
				return nil, fmt.Errorf("line %d: column %d requested but row has %d fields", line, col, len(fields))
			}
			v, err := strconv.ParseFloat(fields[col], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %d: %w", line, col, err)
			}
			out[i] = append(out[i], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("no data rows found")
	}
	return out, nil
}

// ReadFile is Read applied to the named file.
func ReadFile(path string, columns ...int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := Read(f, columns...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
